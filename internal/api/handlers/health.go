package handlers

import (
	"net/http"

	"github.com/lshmam/neucler-square-sub000/internal/api/httputil"
	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/loyaltydb"
)

// HealthHandler returns a handler for GET /api/health.
// Reports degraded when the database stops responding.
func HealthHandler(db *loyaltydb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		httpStatus := http.StatusOK

		if err := db.Conn().Ping(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		if httpStatus != http.StatusOK {
			httputil.Error(w, httpStatus, config.ErrorCodeDatabase, "Database unreachable")
			return
		}
		httputil.JSON(w, httpStatus, map[string]string{"status": status})
	}
}
