package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lshmam/neucler-square-sub000/internal/api/httputil"
	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/engine"
	"github.com/lshmam/neucler-square-sub000/internal/models"
)

// PaymentWebhookHandler returns a handler for POST /api/webhooks/payment.
//
// Response contract with the event source: 2xx acknowledges the delivery
// (duplicates included, redelivery must be a safe no-op), 4xx marks the
// payload as permanently unprocessable, and 5xx asks for redelivery. Only transient
// storage failures map to 5xx.
func PaymentWebhookHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var evt models.PaymentEvent
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorCodeValidation, "Invalid JSON payload")
			return
		}

		summary, err := eng.ProcessPayment(r.Context(), evt)
		if err != nil {
			if errors.Is(err, config.ErrInvalidEvent) {
				httputil.Error(w, http.StatusBadRequest, config.ErrorCodeValidation, err.Error())
				return
			}
			if config.IsTransient(err) {
				slog.Error("payment processing failed, requesting redelivery",
					"orderID", evt.OrderID,
					"tenantID", evt.TenantID,
					"error", err,
				)
				httputil.Error(w, http.StatusServiceUnavailable, config.ErrorCodeDatabase, "Storage unavailable, retry delivery")
				return
			}
			slog.Error("payment processing failed", "orderID", evt.OrderID, "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorCodeDatabase, "Failed to process payment")
			return
		}

		httputil.JSON(w, http.StatusOK, summary)
	}
}
