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

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// List handles GET /api/admins/students
func (h *VoterHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, index_number, class, year, has_voted, registered_at
		FROM student
		ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query students", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.IndexNumber, &s.Class, &s.Year, &s.HasVoted, &s.RegisteredAt); err != nil {
			slog.Error("failed to scan student", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read students", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, students)
}

// Add handles POST /api/admins/voters
func (h *VoterHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.IndexNumber == "" || req.Class == "" || req.Year == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "All fields are required")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO student (id, name, index_number, class, year, has_voted, registered_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	`, uuid.NewString(), req.Name, req.IndexNumber, req.Class, req.Year, time.Now())

	if isPQError(err, pqUniqueViolation) {
		middleware.ErrorResponse(w, http.StatusConflict, "Student with this index number already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert student", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add voter")
		return
	}

	slog.Info("voter added", "index_number", req.IndexNumber)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{
		Message: "Voter added successfully",
	})
}

// BulkImport handles POST /api/admins/voters/bulk
// Inserts the whole batch in one transaction; rows whose index number
// is already on the roll are skipped, not treated as failures.
func (h *VoterHandler) BulkImport(w http.ResponseWriter, r *http.Request) {
	var req models.BulkImportRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Voters) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voters cannot be empty")
		return
	}

	for _, v := range req.Voters {
		if v.Name == "" || v.IndexNumber == "" || v.Class == "" || v.Year == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "All fields are required for every voter")
			return
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	imported := 0
	now := time.Now()
	for _, v := range req.Voters {
		res, err := tx.Exec(`
			INSERT INTO student (id, name, index_number, class, year, has_voted, registered_at)
			VALUES ($1, $2, $3, $4, $5, FALSE, $6)
			ON CONFLICT (index_number) DO NOTHING
		`, uuid.NewString(), v.Name, v.IndexNumber, v.Class, v.Year, now)
		if err != nil {
			slog.Error("failed to insert student", "error", err, "index_number", v.IndexNumber)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import voters")
			return
		}
		if n, _ := res.RowsAffected(); n == 1 {
			imported++
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import voters")
		return
	}

	skipped := len(req.Voters) - imported
	slog.Info("voters imported", "imported", imported, "skipped", skipped)

	middleware.JSONResponse(w, http.StatusCreated, models.BulkImportResponse{
		Message:  "Voters imported successfully",
		Imported: imported,
		Skipped:  skipped,
	})
}

// Delete handles DELETE /api/admins/voters/{id}
func (h *VoterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	studentID := r.PathValue("id")
	if studentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Student ID is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM student WHERE id = $1`, studentID)
	if err != nil {
		slog.Error("failed to delete student", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete voter")
		return
	}

	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Student not found")
		return
	}

	slog.Info("voter deleted", "student_id", studentID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Voter deleted successfully",
	})
}
