// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/classvote/cliparse"
	"github.com/danielhkuo/classvote/middleware"
	"github.com/danielhkuo/classvote/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// Login handles POST /api/students/login
// Verifies the student exists, has not voted, and the voting window is
// open, then returns the identity used for the vote submission.
func (h *VotingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.StudentLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.IndexNumber == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Index number is required")
		return
	}

	// One settings snapshot for the whole eligibility decision
	settings, err := LoadSettings(h.db)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	student, err := CheckLoginEligibility(h.db, req.IndexNumber, settings, time.Now())
	if err != nil {
		writeEligibilityError(w, err, "Invalid index number")
		return
	}

	slog.Info("student logged in", "index_number", student.IndexNumber)

	middleware.JSONResponse(w, http.StatusOK, models.StudentLoginResponse{
		Message: "Login successful",
		Student: models.StudentIdentity{
			ID:          student.ID,
			Name:        student.Name,
			IndexNumber: student.IndexNumber,
			Class:       student.Class,
			Year:        student.Year,
		},
	})
}

// ListCandidates handles GET /api/students/candidates
// Returns candidates grouped by position name, without vote counts.
func (h *VotingHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT c.id, c.name, c.image_path, p.name
		FROM candidate c
		JOIN position p ON c.position_id = p.id
		ORDER BY p.name, c.name
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	grouped := make(map[string][]models.CandidateSummary)
	for rows.Next() {
		var c models.CandidateSummary
		var imagePath sql.NullString
		var position string
		if err := rows.Scan(&c.ID, &c.Name, &imagePath, &position); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		c.ImagePath = imagePath.String
		grouped[position] = append(grouped[position], c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, grouped)
}

// SubmitVote handles POST /api/students/vote
//
// The workflow runs in a strict order: eligibility, then ballot
// validation (both read-only), and only then the tally transaction.
// Nothing is mutated until every selection has been validated.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StudentID == "" || req.Votes == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Student ID and votes are required")
		return
	}

	// Eligibility gate (fast path; the tally re-checks atomically)
	student, err := CheckEligibility(h.db, req.StudentID)
	if err != nil {
		writeEligibilityError(w, err, "Student not found")
		return
	}

	// Validate every selection before touching any counter
	validated, err := ValidateBallot(h.db, req.Votes)
	if err != nil {
		var ballotErr *BallotError
		if errors.As(err, &ballotErr) {
			middleware.ErrorResponse(w, http.StatusBadRequest, ballotMessage(ballotErr))
			return
		}
		slog.Error("failed to validate ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Tally in one transaction: claim the hasVoted flag, increment
	// counters, commit. A lost race rolls back with ErrAlreadyVoted.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if err := ApplyVotes(tx, student.ID, validated); err != nil {
		if errors.Is(err, ErrAlreadyVoted) {
			middleware.ErrorResponse(w, http.StatusForbidden, "You have already voted")
			return
		}
		var ballotErr *BallotError
		if errors.As(err, &ballotErr) {
			middleware.ErrorResponse(w, http.StatusBadRequest, ballotMessage(ballotErr))
			return
		}
		slog.Error("failed to apply votes", "error", err, "student_id", student.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err, "student_id", student.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	slog.Info("vote submitted", "student_id", student.ID, "selections", len(validated))

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Vote submitted successfully",
	})
}

// writeEligibilityError maps eligibility failures onto HTTP statuses.
// notFoundMsg differs between the login path ("Invalid index number")
// and the vote path ("Student not found").
func writeEligibilityError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, ErrStudentNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusForbidden, "You have already voted")
	case errors.Is(err, ErrNotConfigured):
		middleware.ErrorResponse(w, http.StatusForbidden, "Voting has not been configured")
	case errors.Is(err, ErrVotingClosed):
		middleware.ErrorResponse(w, http.StatusForbidden, "Voting is closed")
	default:
		slog.Error("eligibility check failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

func ballotMessage(e *BallotError) string {
	if errors.Is(e, ErrPositionMismatch) {
		return "Candidate does not stand for " + e.Position
	}
	return "Invalid candidate for " + e.Position
}
