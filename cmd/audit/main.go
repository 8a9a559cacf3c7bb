// Command audit recomputes every balance from the ledger and reports
// rows where the cached projection disagrees with the sum of entries.
// Exits non-zero when any discrepancy is found.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lshmam/neucler-square-sub000/internal/loyaltydb"
)

func main() {
	dbPath := flag.String("db", "./data/neucler.sqlite", "Path to the SQLite database")
	flag.Parse()

	if err := run(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "audit error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath string) error {
	db, err := loyaltydb.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	balances, err := db.ListAllBalances()
	if err != nil {
		return fmt.Errorf("list balances: %w", err)
	}

	var mismatches int
	for _, b := range balances {
		sum, err := db.SumLedger(b.TenantID, b.CustomerID, b.ProgramID)
		if err != nil {
			return fmt.Errorf("sum ledger for %s/%s/%s: %w", b.TenantID, b.CustomerID, b.ProgramID, err)
		}
		if sum != b.Balance {
			mismatches++
			fmt.Printf("MISMATCH tenant=%s customer=%s program=%s balance=%d ledger=%d\n",
				b.TenantID, b.CustomerID, b.ProgramID, b.Balance, sum)
		}
	}

	fmt.Printf("audited %d balances, %d mismatches\n", len(balances), mismatches)
	if mismatches > 0 {
		os.Exit(1)
	}
	return nil
}
