package loyaltydb

import (
	"testing"
)

func TestGetBalance_Missing(t *testing.T) {
	db := newTestDB(t)

	b, err := db.GetBalance("t1", "c1", "p1")
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}
	if b != nil {
		t.Errorf("GetBalance() = %v, want nil for never-accrued pair", b)
	}
}

func TestListBalancesByCustomer(t *testing.T) {
	db := newTestDB(t)

	db.ApplyAccrual(testEntry("ord-1", "p1", 10))
	db.ApplyAccrual(testEntry("ord-1", "p2", 5))

	balances, err := db.ListBalancesByCustomer("t1", "c1")
	if err != nil {
		t.Fatalf("ListBalancesByCustomer() error = %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	if balances[0].ProgramID != "p1" || balances[0].Balance != 10 {
		t.Errorf("balances[0] = %+v, want p1/10", balances[0])
	}
	if balances[1].ProgramID != "p2" || balances[1].Balance != 5 {
		t.Errorf("balances[1] = %+v, want p2/5", balances[1])
	}

	// Unknown customer yields an empty list, not an error.
	none, err := db.ListBalancesByCustomer("t1", "stranger")
	if err != nil {
		t.Fatalf("ListBalancesByCustomer() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d balances for unknown customer, want 0", len(none))
	}
}

func TestListAllBalances(t *testing.T) {
	db := newTestDB(t)

	db.ApplyAccrual(testEntry("ord-1", "p1", 10))

	e2 := testEntry("ord-2", "p1", 4)
	e2.TenantID = "t2"
	db.ApplyAccrual(e2)

	balances, err := db.ListAllBalances()
	if err != nil {
		t.Fatalf("ListAllBalances() error = %v", err)
	}
	if len(balances) != 2 {
		t.Errorf("got %d balances, want 2 across tenants", len(balances))
	}
}
