package models

// ProgramStatus represents the lifecycle state of a loyalty program.
type ProgramStatus string

const (
	ProgramStatusActive   ProgramStatus = "active"
	ProgramStatusArchived ProgramStatus = "archived"
)

// AccrualType discriminates the accrual rule variants.
type AccrualType string

const (
	AccrualAmountSpent AccrualType = "amount_spent"
	AccrualVisitBased  AccrualType = "visit_based"
)

// Program represents a loyalty program owned by a tenant.
//
// The rule fields form a tagged union discriminated by AccrualType:
// amount_spent uses SpendUnitCents + PointsPerUnit, visit_based uses
// PointsPerVisit. Validation at the configuration boundary guarantees
// the fields for the active variant are well-formed.
type Program struct {
	ID             string        `json:"id"`
	TenantID       string        `json:"tenant_id"`
	Name           string        `json:"name"`
	Status         ProgramStatus `json:"status"`
	AccrualType    AccrualType   `json:"accrual_type"`
	SpendUnitCents int64         `json:"spend_unit_cents,omitempty"`
	PointsPerUnit  int           `json:"points_per_unit,omitempty"`
	PointsPerVisit int           `json:"points_per_visit,omitempty"`
	Terminology    string        `json:"terminology"`
	CreatedAt      string        `json:"created_at"`
	ArchivedAt     *string       `json:"archived_at,omitempty"`
}

// Balance is the cached point balance for a (customer, program) pair.
// It is a projection of the ledger, re-derivable by summing entries.
type Balance struct {
	TenantID   string `json:"tenant_id"`
	CustomerID string `json:"customer_id"`
	ProgramID  string `json:"program_id"`
	Balance    int    `json:"balance"`
	UpdatedAt  string `json:"updated_at"`
}

// LedgerReason categorizes a ledger entry.
type LedgerReason string

const (
	// LedgerReasonPurchase is the only reason this engine writes.
	// Negative redemption entries are reserved for a future surface.
	LedgerReasonPurchase LedgerReason = "purchase"
)

// LedgerEntry is an immutable, append-only record of a point change.
// At most one entry may exist per (tenant, program, idempotency key).
type LedgerEntry struct {
	ID             string       `json:"id"`
	TenantID       string       `json:"tenant_id"`
	CustomerID     string       `json:"customer_id"`
	ProgramID      string       `json:"program_id"`
	PointsChange   int          `json:"points_change"`
	Reason         LedgerReason `json:"reason"`
	IdempotencyKey string       `json:"idempotency_key"`
	CreatedAt      string       `json:"created_at"`
}

// PaymentEvent is the inbound payment-completion notification.
// OrderID doubles as the idempotency key: the event source may redeliver
// the same order any number of times, concurrently.
type PaymentEvent struct {
	TenantID         string `json:"tenant_id"`
	CustomerID       string `json:"customer_id"`
	OrderID          string `json:"order_id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	CustomerPhone    string `json:"customer_phone,omitempty"`
}

// AwardStatus describes the outcome of a single program's accrual attempt.
type AwardStatus string

const (
	AwardCredited        AwardStatus = "credited"
	AwardAlreadyCredited AwardStatus = "already_credited"
	AwardNoPoints        AwardStatus = "no_points"
	AwardInvalidRule     AwardStatus = "invalid_rule"
)

// ProgramAward is the per-program outcome of processing one payment.
type ProgramAward struct {
	ProgramID   string      `json:"program_id"`
	ProgramName string      `json:"program_name"`
	Terminology string      `json:"terminology"`
	Status      AwardStatus `json:"status"`
	Points      int         `json:"points"`
	NewBalance  int         `json:"new_balance"`
}

// OutcomeSummary enumerates what one ProcessPayment call did.
// It is returned to the caller for logging and testing, never persisted.
type OutcomeSummary struct {
	TenantID         string         `json:"tenant_id"`
	CustomerID       string         `json:"customer_id"`
	OrderID          string         `json:"order_id"`
	AmountMinorUnits int64          `json:"amount_minor_units"`
	AlreadyProcessed bool           `json:"already_processed"`
	Awards           []ProgramAward `json:"awards"`
}

// Pagination contains pagination parameters for list queries.
type Pagination struct {
	Page     int
	PageSize int
}
