package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lshmam/neucler-square-sub000/internal/accrual"
	"github.com/lshmam/neucler-square-sub000/internal/api/httputil"
	"github.com/lshmam/neucler-square-sub000/internal/config"
	"github.com/lshmam/neucler-square-sub000/internal/loyaltydb"
	"github.com/lshmam/neucler-square-sub000/internal/models"
)

// createProgramRequest is the payload for POST /api/tenants/{tenantID}/programs.
type createProgramRequest struct {
	Name           string `json:"name"`
	AccrualType    string `json:"accrual_type"`
	SpendUnitCents int64  `json:"spend_unit_cents"`
	PointsPerUnit  int    `json:"points_per_unit"`
	PointsPerVisit int    `json:"points_per_visit"`
	Terminology    string `json:"terminology"`
}

// CreateProgramHandler returns a handler creating a loyalty program.
// The accrual rule is validated here, at the configuration boundary, so
// the registry only ever returns well-formed programs.
func CreateProgramHandler(db *loyaltydb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantID")

		var req createProgramRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorCodeValidation, "Invalid JSON payload")
			return
		}

		terminology := req.Terminology
		if terminology == "" {
			terminology = "points"
		}

		p := &models.Program{
			ID:             uuid.New().String(),
			TenantID:       tenantID,
			Name:           req.Name,
			Status:         models.ProgramStatusActive,
			AccrualType:    models.AccrualType(req.AccrualType),
			SpendUnitCents: req.SpendUnitCents,
			PointsPerUnit:  req.PointsPerUnit,
			PointsPerVisit: req.PointsPerVisit,
			Terminology:    terminology,
		}

		if err := accrual.ValidateProgram(p); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorCodeValidation, err.Error())
			return
		}

		if err := db.InsertProgram(p); err != nil {
			slog.Error("create program: insert failed", "tenantID", tenantID, "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorCodeDatabase, "Failed to create program")
			return
		}

		created, err := db.GetProgram(tenantID, p.ID)
		if err != nil || created == nil {
			slog.Error("create program: readback failed", "programID", p.ID, "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorCodeDatabase, "Failed to read created program")
			return
		}

		httputil.JSON(w, http.StatusCreated, created)
	}
}

// ListProgramsHandler returns a handler listing a tenant's programs.
// Pass ?status=active to restrict to the accrual fan-out set.
func ListProgramsHandler(db *loyaltydb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantID")

		var (
			programs []models.Program
			err      error
		)
		if r.URL.Query().Get("status") == string(models.ProgramStatusActive) {
			programs, err = db.ListActivePrograms(tenantID)
		} else {
			programs, err = db.ListPrograms(tenantID)
		}
		if err != nil {
			slog.Error("list programs failed", "tenantID", tenantID, "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorCodeDatabase, "Failed to list programs")
			return
		}

		if programs == nil {
			programs = []models.Program{}
		}
		httputil.JSON(w, http.StatusOK, programs)
	}
}

// ArchiveProgramHandler returns a handler soft-deleting a program.
// Archived programs stop accruing but keep their history and balances.
func ArchiveProgramHandler(db *loyaltydb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantID")
		programID := chi.URLParam(r, "programID")

		if err := db.ArchiveProgram(tenantID, programID); err != nil {
			if errors.Is(err, config.ErrProgramNotFound) {
				httputil.Error(w, http.StatusNotFound, config.ErrorCodeNotFound, "Program not found")
				return
			}
			slog.Error("archive program failed", "programID", programID, "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorCodeDatabase, "Failed to archive program")
			return
		}

		httputil.JSON(w, http.StatusOK, map[string]string{
			"program_id": programID,
			"status":     string(models.ProgramStatusArchived),
		})
	}
}
