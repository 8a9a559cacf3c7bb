package loyaltydb

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/models"
)

// InsertProgram stores a new loyalty program.
func (d *DB) InsertProgram(p *models.Program) error {
	_, err := d.conn.Exec(`
		INSERT INTO programs (
			id, tenant_id, name, status, accrual_type,
			spend_unit_cents, points_per_unit, points_per_visit, terminology
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Name, p.Status, p.AccrualType,
		p.SpendUnitCents, p.PointsPerUnit, p.PointsPerVisit, p.Terminology,
	)
	if err != nil {
		return fmt.Errorf("failed to insert program %s: %w", p.ID, err)
	}

	slog.Info("program created",
		"programID", p.ID,
		"tenantID", p.TenantID,
		"name", p.Name,
		"accrualType", p.AccrualType,
	)
	return nil
}

// GetProgram retrieves a single program scoped to a tenant.
// Returns nil if no such program exists.
func (d *DB) GetProgram(tenantID, programID string) (*models.Program, error) {
	p := &models.Program{}
	err := d.conn.QueryRow(`
		SELECT id, tenant_id, name, status, accrual_type,
		       spend_unit_cents, points_per_unit, points_per_visit,
		       terminology, created_at, archived_at
		FROM programs WHERE tenant_id = ? AND id = ?`, tenantID, programID,
	).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Status, &p.AccrualType,
		&p.SpendUnitCents, &p.PointsPerUnit, &p.PointsPerVisit,
		&p.Terminology, &p.CreatedAt, &p.ArchivedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program %s: %w", programID, err)
	}
	return p, nil
}

// ListActivePrograms returns a tenant's active programs in insertion order
// (oldest first), so fan-out and notification sequence stay stable.
func (d *DB) ListActivePrograms(tenantID string) ([]models.Program, error) {
	return d.queryPrograms(`
		SELECT id, tenant_id, name, status, accrual_type,
		       spend_unit_cents, points_per_unit, points_per_visit,
		       terminology, created_at, archived_at
		FROM programs WHERE tenant_id = ? AND status = ?
		ORDER BY created_at ASC, rowid ASC`, tenantID, models.ProgramStatusActive)
}

// ListPrograms returns all of a tenant's programs, archived included,
// in insertion order.
func (d *DB) ListPrograms(tenantID string) ([]models.Program, error) {
	return d.queryPrograms(`
		SELECT id, tenant_id, name, status, accrual_type,
		       spend_unit_cents, points_per_unit, points_per_visit,
		       terminology, created_at, archived_at
		FROM programs WHERE tenant_id = ?
		ORDER BY created_at ASC, rowid ASC`, tenantID)
}

// ArchiveProgram soft-deletes a program. Its ledger history and balances
// remain queryable; it is only excluded from accrual fan-out.
func (d *DB) ArchiveProgram(tenantID, programID string) error {
	result, err := d.conn.Exec(`
		UPDATE programs
		SET status = ?, archived_at = datetime('now')
		WHERE tenant_id = ? AND id = ?`,
		models.ProgramStatusArchived, tenantID, programID,
	)
	if err != nil {
		return fmt.Errorf("failed to archive program %s: %w", programID, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("archive program %s: %w", programID, config.ErrProgramNotFound)
	}

	slog.Info("program archived", "programID", programID, "tenantID", tenantID)
	return nil
}

func (d *DB) queryPrograms(query string, args ...interface{}) ([]models.Program, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	var programs []models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.Name, &p.Status, &p.AccrualType,
			&p.SpendUnitCents, &p.PointsPerUnit, &p.PointsPerVisit,
			&p.Terminology, &p.CreatedAt, &p.ArchivedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan program row: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}
