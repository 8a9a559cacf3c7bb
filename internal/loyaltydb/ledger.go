package loyaltydb

import (
	"fmt"
	"log/slog"

	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/models"
)

// CreditedPrograms returns the set of program IDs that already have a
// ledger entry for the given (tenant, idempotency key) pair.
func (d *DB) CreditedPrograms(tenantID, idempotencyKey string) (map[string]bool, error) {
	rows, err := d.conn.Query(`
		SELECT program_id FROM ledger_entries
		WHERE tenant_id = ? AND idempotency_key = ?`,
		tenantID, idempotencyKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query credited programs for order %s: %w", idempotencyKey, err)
	}
	defer rows.Close()

	credited := make(map[string]bool)
	for rows.Next() {
		var programID string
		if err := rows.Scan(&programID); err != nil {
			return nil, fmt.Errorf("failed to scan credited program row: %w", err)
		}
		credited[programID] = true
	}
	return credited, rows.Err()
}

// ApplyAccrual atomically writes one ledger entry and applies its points
// change to the (customer, program) balance, creating the balance row on
// first accrual. Returns the new balance.
//
// The ledger's unique index on (tenant_id, program_id, idempotency_key)
// is the actual duplicate guard: when a concurrent or redelivered attempt
// loses the insert, the whole transaction rolls back and ErrDuplicateEntry
// is returned, so the loser never touches the balance.
func (d *DB) ApplyAccrual(e *models.LedgerEntry) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin accrual transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO ledger_entries (
			id, tenant_id, customer_id, program_id,
			points_change, reason, idempotency_key
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (tenant_id, program_id, idempotency_key) DO NOTHING`,
		e.ID, e.TenantID, e.CustomerID, e.ProgramID,
		e.PointsChange, e.Reason, e.IdempotencyKey,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ledger entry for order %s: %w", e.IdempotencyKey, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read ledger insert result: %w", err)
	}
	if inserted == 0 {
		return 0, fmt.Errorf("order %s, program %s: %w", e.IdempotencyKey, e.ProgramID, config.ErrDuplicateEntry)
	}

	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO balances (tenant_id, customer_id, program_id, balance)
		VALUES (?, ?, ?, 0)`,
		e.TenantID, e.CustomerID, e.ProgramID,
	); err != nil {
		return 0, fmt.Errorf("failed to ensure balance row for %s/%s: %w", e.CustomerID, e.ProgramID, err)
	}

	if _, err := tx.Exec(`
		UPDATE balances
		SET balance = balance + ?, updated_at = datetime('now')
		WHERE tenant_id = ? AND customer_id = ? AND program_id = ?`,
		e.PointsChange, e.TenantID, e.CustomerID, e.ProgramID,
	); err != nil {
		return 0, fmt.Errorf("failed to increment balance for %s/%s: %w", e.CustomerID, e.ProgramID, err)
	}

	var newBalance int
	if err := tx.QueryRow(`
		SELECT balance FROM balances
		WHERE tenant_id = ? AND customer_id = ? AND program_id = ?`,
		e.TenantID, e.CustomerID, e.ProgramID,
	).Scan(&newBalance); err != nil {
		return 0, fmt.Errorf("failed to read balance for %s/%s: %w", e.CustomerID, e.ProgramID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit accrual for order %s: %w", e.IdempotencyKey, err)
	}

	slog.Info("accrual applied",
		"tenantID", e.TenantID,
		"customerID", e.CustomerID,
		"programID", e.ProgramID,
		"orderID", e.IdempotencyKey,
		"pointsChange", e.PointsChange,
		"newBalance", newBalance,
	)
	return newBalance, nil
}

// ListLedgerByCustomer returns a customer's ledger entries, newest first,
// with pagination.
func (d *DB) ListLedgerByCustomer(tenantID, customerID string, pag models.Pagination) ([]models.LedgerEntry, int64, error) {
	var total int64
	if err := d.conn.QueryRow(`
		SELECT COUNT(*) FROM ledger_entries
		WHERE tenant_id = ? AND customer_id = ?`,
		tenantID, customerID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	offset := (pag.Page - 1) * pag.PageSize
	entries, err := d.queryLedger(`
		SELECT id, tenant_id, customer_id, program_id,
		       points_change, reason, idempotency_key, created_at
		FROM ledger_entries
		WHERE tenant_id = ? AND customer_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?`, tenantID, customerID, pag.PageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListLedgerByProgram returns all ledger entries for a program, oldest
// first. Archived programs keep their history queryable through this.
func (d *DB) ListLedgerByProgram(tenantID, programID string) ([]models.LedgerEntry, error) {
	return d.queryLedger(`
		SELECT id, tenant_id, customer_id, program_id,
		       points_change, reason, idempotency_key, created_at
		FROM ledger_entries
		WHERE tenant_id = ? AND program_id = ?
		ORDER BY created_at ASC, rowid ASC`, tenantID, programID)
}

// SumLedger returns the sum of points_change over all entries for a
// (customer, program) pair. The stored balance must always equal this.
func (d *DB) SumLedger(tenantID, customerID, programID string) (int, error) {
	var sum int
	err := d.conn.QueryRow(`
		SELECT COALESCE(SUM(points_change), 0) FROM ledger_entries
		WHERE tenant_id = ? AND customer_id = ? AND program_id = ?`,
		tenantID, customerID, programID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger for %s/%s: %w", customerID, programID, err)
	}
	return sum, nil
}

func (d *DB) queryLedger(query string, args ...interface{}) ([]models.LedgerEntry, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.CustomerID, &e.ProgramID,
			&e.PointsChange, &e.Reason, &e.IdempotencyKey, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
