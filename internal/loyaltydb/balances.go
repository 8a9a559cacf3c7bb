package loyaltydb

import (
	"database/sql"
	"fmt"

	"github.com/lshmam/neucler-square-sub000/internal/models"
)

// GetBalance retrieves the balance row for a (customer, program) pair.
// Returns nil if no accrual has ever happened for the pair.
func (d *DB) GetBalance(tenantID, customerID, programID string) (*models.Balance, error) {
	b := &models.Balance{}
	err := d.conn.QueryRow(`
		SELECT tenant_id, customer_id, program_id, balance, updated_at
		FROM balances
		WHERE tenant_id = ? AND customer_id = ? AND program_id = ?`,
		tenantID, customerID, programID,
	).Scan(&b.TenantID, &b.CustomerID, &b.ProgramID, &b.Balance, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for %s/%s: %w", customerID, programID, err)
	}
	return b, nil
}

// ListBalancesByCustomer returns all balance rows a customer holds with a
// tenant, across active and archived programs.
func (d *DB) ListBalancesByCustomer(tenantID, customerID string) ([]models.Balance, error) {
	return d.queryBalances(`
		SELECT tenant_id, customer_id, program_id, balance, updated_at
		FROM balances
		WHERE tenant_id = ? AND customer_id = ?
		ORDER BY program_id ASC`, tenantID, customerID)
}

// ListAllBalances returns every balance row. Used by the audit command to
// re-derive balances from the ledger.
func (d *DB) ListAllBalances() ([]models.Balance, error) {
	return d.queryBalances(`
		SELECT tenant_id, customer_id, program_id, balance, updated_at
		FROM balances
		ORDER BY tenant_id, customer_id, program_id`)
}

func (d *DB) queryBalances(query string, args ...interface{}) ([]models.Balance, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	var balances []models.Balance
	for rows.Next() {
		var b models.Balance
		if err := rows.Scan(&b.TenantID, &b.CustomerID, &b.ProgramID, &b.Balance, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
