package accrual

// Rule is the closed set of accrual formulas a program can carry.
// ParseRule is the only constructor, so a Rule value is always well-formed
// and ComputePoints is total over it.
type Rule interface {
	isRule()
}

// AmountSpent awards points proportionally to the charged amount:
// PointsPerUnit points for every full SpendUnitCents spent.
type AmountSpent struct {
	SpendUnitCents int64
	PointsPerUnit  int
}

func (AmountSpent) isRule() {}

// VisitBased awards a flat number of points per qualifying payment,
// irrespective of the charged amount.
type VisitBased struct {
	PointsPerVisit int
}

func (VisitBased) isRule() {}

// ComputePoints maps a rule and a charged amount (in minor currency units)
// to the points earned. The amount must be non-negative; validating that
// is the caller's contract, checked before the fan-out starts.
//
// AmountSpent truncates toward zero: a charge smaller than one spend unit
// earns nothing, intentionally. VisitBased counts any payment as one
// visit, including a zero-amount one.
func ComputePoints(rule Rule, amountMinorUnits int64) int {
	switch r := rule.(type) {
	case AmountSpent:
		return int(amountMinorUnits * int64(r.PointsPerUnit) / r.SpendUnitCents)
	case VisitBased:
		return r.PointsPerVisit
	default:
		// Unreachable for rules produced by ParseRule.
		return 0
	}
}
