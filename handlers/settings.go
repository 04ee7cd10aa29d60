// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/classvote/cliparse"
	"github.com/danielhkuo/classvote/middleware"
	"github.com/danielhkuo/classvote/models"
)

type SettingsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSettingsHandler(db *sql.DB, cfg cliparse.Config) *SettingsHandler {
	return &SettingsHandler{db: db, cfg: cfg}
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := LoadSettings(h.db)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if settings == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No settings found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SettingsResponse{
		Message:  "Settings retrieved successfully",
		Settings: *settings,
	})
}

// Save handles POST /api/settings
// Upserts the singleton row; there is never more than one voting window.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.SaveSettingsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() || req.VotersAuthKey == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "End date must be after start date")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO election_settings (id, start_time, end_time, voters_auth_key, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    voters_auth_key = EXCLUDED.voters_auth_key,
		    updated_at = EXCLUDED.updated_at
	`, req.StartTime, req.EndTime, req.VotersAuthKey, time.Now())
	if err != nil {
		slog.Error("failed to save settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	slog.Info("settings saved", "start", req.StartTime, "end", req.EndTime)

	middleware.JSONResponse(w, http.StatusOK, models.SettingsResponse{
		Message: "Settings saved successfully",
		Settings: models.ElectionSettings{
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			VotersAuthKey: req.VotersAuthKey,
			UpdatedAt:     time.Now(),
		},
	})
}
