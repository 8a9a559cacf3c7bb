package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lshmam/neucler-square-sub000/internal/accrual"
	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/loyaltydb"
	"github.com/lshmam/neucler-square-sub000/internal/models"
	"github.com/lshmam/neucler-square-sub000/internal/notify"
)

// Engine is the idempotent accrual orchestrator. One ProcessPayment call
// fans a payment-completion event out across a tenant's active programs,
// crediting each at most once per order.
type Engine struct {
	db         *loyaltydb.DB
	dispatcher *notify.Dispatcher
}

// New creates an Engine with the given store and dispatcher.
func New(db *loyaltydb.DB, dispatcher *notify.Dispatcher) *Engine {
	return &Engine{db: db, dispatcher: dispatcher}
}

// ProcessPayment applies one payment event across all of the tenant's
// active programs. Safe under redelivery and concurrent delivery of the
// same order: the ledger's uniqueness constraint guarantees each
// (program, order) pair is credited at most once.
//
// Per-program commits are independent and durable. If storage fails
// partway through the fan-out, the call returns a transient error so the
// event source redelivers; on retry, programs already credited are
// skipped and only the remainder is processed.
func (e *Engine) ProcessPayment(ctx context.Context, evt models.PaymentEvent) (*models.OutcomeSummary, error) {
	if err := validateEvent(evt); err != nil {
		return nil, err
	}

	credited, err := e.db.CreditedPrograms(evt.TenantID, evt.OrderID)
	if err != nil {
		return nil, config.NewTransientError(fmt.Errorf("idempotency check for order %s: %w", evt.OrderID, err))
	}

	programs, err := e.db.ListActivePrograms(evt.TenantID)
	if err != nil {
		return nil, config.NewTransientError(fmt.Errorf("list programs for tenant %s: %w", evt.TenantID, err))
	}

	summary := &models.OutcomeSummary{
		TenantID:         evt.TenantID,
		CustomerID:       evt.CustomerID,
		OrderID:          evt.OrderID,
		AmountMinorUnits: evt.AmountMinorUnits,
	}

	if len(programs) == 0 {
		// No active programs is a legitimate no-op, not a fault.
		slog.Debug("no active programs for tenant", "tenantID", evt.TenantID, "orderID", evt.OrderID)
		return summary, nil
	}

	var newlyCredited []models.ProgramAward

	for i := range programs {
		p := &programs[i]
		award := models.ProgramAward{
			ProgramID:   p.ID,
			ProgramName: p.Name,
			Terminology: p.Terminology,
		}

		if credited[p.ID] {
			award.Status = models.AwardAlreadyCredited
			summary.Awards = append(summary.Awards, award)
			continue
		}

		rule, err := accrual.ParseRule(p)
		if err != nil {
			// One program's misconfiguration must not block the rest.
			slog.Error("skipping program with malformed accrual rule",
				"tenantID", evt.TenantID,
				"programID", p.ID,
				"error", err,
			)
			award.Status = models.AwardInvalidRule
			summary.Awards = append(summary.Awards, award)
			continue
		}

		points := accrual.ComputePoints(rule, evt.AmountMinorUnits)
		if points == 0 {
			// A zero-point ledger entry carries no information.
			award.Status = models.AwardNoPoints
			summary.Awards = append(summary.Awards, award)
			continue
		}

		newBalance, err := e.db.ApplyAccrual(&models.LedgerEntry{
			ID:             uuid.New().String(),
			TenantID:       evt.TenantID,
			CustomerID:     evt.CustomerID,
			ProgramID:      p.ID,
			PointsChange:   points,
			Reason:         models.LedgerReasonPurchase,
			IdempotencyKey: evt.OrderID,
		})
		if errors.Is(err, config.ErrDuplicateEntry) {
			// A concurrent delivery of the same order won the insert.
			// The constraint did its job; nothing more to do here.
			award.Status = models.AwardAlreadyCredited
			summary.Awards = append(summary.Awards, award)
			continue
		}
		if err != nil {
			// Abort the whole call; already-committed programs stay
			// durable and the idempotency gate skips them on retry.
			return nil, config.NewTransientError(fmt.Errorf("accrual for program %s, order %s: %w", p.ID, evt.OrderID, err))
		}

		award.Status = models.AwardCredited
		award.Points = points
		award.NewBalance = newBalance
		summary.Awards = append(summary.Awards, award)
		newlyCredited = append(newlyCredited, award)
	}

	summary.AlreadyProcessed = len(newlyCredited) == 0 && len(credited) > 0

	// Points are the truth; the message is best-effort. Dispatch only
	// after every program's commit, and never let a channel failure
	// reach the caller.
	for _, award := range newlyCredited {
		e.dispatcher.Notify(ctx, evt.CustomerPhone, award)
	}

	slog.Info("payment processed",
		"tenantID", evt.TenantID,
		"customerID", evt.CustomerID,
		"orderID", evt.OrderID,
		"amountMinorUnits", evt.AmountMinorUnits,
		"programs", len(programs),
		"credited", len(newlyCredited),
		"alreadyProcessed", summary.AlreadyProcessed,
	)
	return summary, nil
}

// validateEvent rejects caller contract violations before any side effect.
func validateEvent(evt models.PaymentEvent) error {
	if evt.TenantID == "" {
		return fmt.Errorf("%w: tenant_id is required", config.ErrInvalidEvent)
	}
	if evt.CustomerID == "" {
		return fmt.Errorf("%w: customer_id is required", config.ErrInvalidEvent)
	}
	if evt.OrderID == "" {
		return fmt.Errorf("%w: order_id is required", config.ErrInvalidEvent)
	}
	if evt.AmountMinorUnits < 0 {
		return fmt.Errorf("%w: amount_minor_units must be >= 0, got %d", config.ErrInvalidEvent, evt.AmountMinorUnits)
	}
	return nil
}
