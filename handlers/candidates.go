// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/danielhkuo/classvote/cliparse"
	"github.com/danielhkuo/classvote/middleware"
	"github.com/danielhkuo/classvote/models"
)

// pq error codes
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isPQError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

type CandidateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCandidateHandler(db *sql.DB, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{db: db, cfg: cfg}
}

// Add handles POST /api/admins/candidates
// The id number must belong to a registered student and the position
// must exist; at most one candidate per (idNumber, position).
func (h *CandidateHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.IDNumber == "" || req.Name == "" || req.Position == "" || req.Year == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "All fields are required")
		return
	}

	positionID, err := h.resolvePosition(req.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Position does not exist")
			return
		}
		slog.Error("failed to resolve position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Candidates must come from the voter roll
	var onRoll bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM student WHERE index_number = $1)
	`, req.IDNumber).Scan(&onRoll)
	if err != nil {
		slog.Error("failed to check student roll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !onRoll {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ID number must match an existing student's index number")
		return
	}

	candidateID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO candidate (id, id_number, name, position_id, year, image_path, votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
	`, candidateID, req.IDNumber, req.Name, positionID, req.Year, req.ImagePath, time.Now())

	if isPQError(err, pqUniqueViolation) {
		middleware.ErrorResponse(w, http.StatusConflict, "Candidate already exists for this position")
		return
	}
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "candidate_id", candidateID, "position", req.Position)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "Candidate added successfully",
	})
}

// Get handles GET /api/admins/candidates/{id}
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate ID is required")
		return
	}

	var c models.Candidate
	var imagePath sql.NullString
	err := h.db.QueryRow(`
		SELECT c.id, c.id_number, c.name, p.name, c.year, c.image_path, c.votes, c.created_at
		FROM candidate c
		JOIN position p ON c.position_id = p.id
		WHERE c.id = $1
	`, candidateID).Scan(&c.ID, &c.IDNumber, &c.Name, &c.Position, &c.Year, &imagePath, &c.Votes, &c.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	c.ImagePath = imagePath.String

	middleware.JSONResponse(w, http.StatusOK, c)
}

// Update handles PUT /api/admins/candidates/{id}
// Vote counters are never touched here; only the tally updates them.
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate ID is required")
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.IDNumber == "" || req.Name == "" || req.Position == "" || req.Year == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "All fields are required")
		return
	}

	positionID, err := h.resolvePosition(req.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Position does not exist")
			return
		}
		slog.Error("failed to resolve position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	query := `
		UPDATE candidate
		SET id_number = $1, name = $2, position_id = $3, year = $4
		WHERE id = $5
	`
	args := []interface{}{req.IDNumber, req.Name, positionID, req.Year, candidateID}
	if req.ImagePath != "" {
		query = `
			UPDATE candidate
			SET id_number = $1, name = $2, position_id = $3, year = $4, image_path = $5
			WHERE id = $6
		`
		args = []interface{}{req.IDNumber, req.Name, positionID, req.Year, req.ImagePath, candidateID}
	}

	res, err := h.db.Exec(query, args...)
	if isPQError(err, pqUniqueViolation) {
		middleware.ErrorResponse(w, http.StatusConflict, "Another candidate already exists for this position with the same ID number")
		return
	}
	if err != nil {
		slog.Error("failed to update candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update candidate")
		return
	}

	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Candidate updated successfully",
	})
}

// Delete handles DELETE /api/admins/candidates/{id}
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate ID is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM candidate WHERE id = $1`, candidateID)
	if err != nil {
		slog.Error("failed to delete candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	slog.Info("candidate deleted", "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Candidate deleted successfully",
	})
}

func (h *CandidateHandler) resolvePosition(name string) (string, error) {
	var id string
	err := h.db.QueryRow(`SELECT id FROM position WHERE name = $1`, name).Scan(&id)
	return id, err
}
