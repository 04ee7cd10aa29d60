// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/classvote/cliparse"
	"github.com/danielhkuo/classvote/middleware"
	"github.com/danielhkuo/classvote/models"
)

type PositionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPositionHandler(db *sql.DB, cfg cliparse.Config) *PositionHandler {
	return &PositionHandler{db: db, cfg: cfg}
}

// List handles GET /api/positions
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, created_at FROM position ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query positions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	positions := []models.Position{}
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			slog.Error("failed to scan position", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read positions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, positions)
}

// Add handles POST /api/admins/positions
func (h *PositionHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddPositionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Position name is required")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO position (id, name, created_at)
		VALUES ($1, $2, $3)
	`, uuid.NewString(), req.Name, time.Now())

	if isPQError(err, pqUniqueViolation) {
		middleware.ErrorResponse(w, http.StatusConflict, "Position already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add position")
		return
	}

	slog.Info("position added", "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "Position added successfully",
	})
}

// Delete handles DELETE /api/admins/positions/{id}
// Rejected while candidates still reference the position (FK RESTRICT).
func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	positionID := r.PathValue("id")
	if positionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Position ID is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM position WHERE id = $1`, positionID)
	if isPQError(err, pqForeignKeyViolation) {
		middleware.ErrorResponse(w, http.StatusConflict, "Position still has candidates")
		return
	}
	if err != nil {
		slog.Error("failed to delete position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete position")
		return
	}

	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Position not found")
		return
	}

	slog.Info("position deleted", "position_id", positionID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Position deleted successfully",
	})
}
