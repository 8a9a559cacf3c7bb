package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lshmam/neucler-square-sub000/internal/api/httputil"
	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/loyaltydb"
	"github.com/lshmam/neucler-square-sub000/internal/models"
)

// CustomerBalancesHandler returns a handler listing a customer's balances
// across all of the tenant's programs, archived included.
func CustomerBalancesHandler(db *loyaltydb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantID")
		customerID := chi.URLParam(r, "customerID")

		balances, err := db.ListBalancesByCustomer(tenantID, customerID)
		if err != nil {
			slog.Error("list balances failed", "tenantID", tenantID, "customerID", customerID, "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorCodeDatabase, "Failed to list balances")
			return
		}

		if balances == nil {
			balances = []models.Balance{}
		}
		httputil.JSON(w, http.StatusOK, balances)
	}
}

// CustomerLedgerHandler returns a handler listing a customer's ledger
// entries, newest first, paginated via ?page= and ?page_size=.
func CustomerLedgerHandler(db *loyaltydb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantID")
		customerID := chi.URLParam(r, "customerID")

		pag := parsePagination(r)
		entries, total, err := db.ListLedgerByCustomer(tenantID, customerID, pag)
		if err != nil {
			slog.Error("list ledger failed", "tenantID", tenantID, "customerID", customerID, "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorCodeDatabase, "Failed to list ledger entries")
			return
		}

		if entries == nil {
			entries = []models.LedgerEntry{}
		}
		httputil.JSONList(w, entries, pag.Page, pag.PageSize, total)
	}
}

func parsePagination(r *http.Request) models.Pagination {
	pag := models.Pagination{Page: 1, PageSize: config.DefaultPageSize}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			pag.Page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			if n > config.MaxPageSize {
				n = config.MaxPageSize
			}
			pag.PageSize = n
		}
	}
	return pag
}
