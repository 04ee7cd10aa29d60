// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/classvote/auth"
	"github.com/danielhkuo/classvote/cliparse"
	"github.com/danielhkuo/classvote/middleware"
	"github.com/danielhkuo/classvote/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// Login handles POST /api/admins/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var id, name, email, passwordHash string
	err := h.db.QueryRow(`
		SELECT id, name, email, password_hash FROM admin WHERE email = $1
	`, req.Email).Scan(&id, &name, &email, &passwordHash)

	// Same response for unknown email and wrong password
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(req.Password, passwordHash); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateAdminToken(id, email, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to generate admin token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("admin logged in", "email", email)

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Message: "Login successful",
		Token:   token,
		Admin:   models.AdminIdentity{ID: id, Name: name, Email: email},
	})
}

// ChangePassword handles PUT /api/admins/change-password
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.CurrentPassword == "" || req.NewPassword == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email, current password, and new password are required")
		return
	}

	var id, passwordHash string
	err := h.db.QueryRow(`
		SELECT id, password_hash FROM admin WHERE email = $1
	`, req.Email).Scan(&id, &passwordHash)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Admin not found")
		return
	}
	if err != nil {
		slog.Error("failed to query admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(req.CurrentPassword, passwordHash); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	if _, err := h.db.Exec(`UPDATE admin SET password_hash = $1 WHERE id = $2`, newHash, id); err != nil {
		slog.Error("failed to update password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Password changed successfully",
	})
}

// Stats handles GET /api/admins/stats
// Returns voter turnout counters.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var total, voted int
	err := h.db.QueryRow(`
		SELECT COUNT(*), COUNT(*) FILTER (WHERE has_voted) FROM student
	`).Scan(&total, &voted)
	if err != nil {
		slog.Error("failed to query stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		TotalVoters: total,
		Voted:       voted,
		NotVoted:    total - voted,
	})
}

// Results handles GET /api/admins/results
// Returns full candidate records, including vote counts, grouped by
// position name.
func (h *AdminHandler) Results(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT c.id, c.id_number, c.name, p.name, c.year, c.image_path, c.votes, c.created_at
		FROM candidate c
		JOIN position p ON c.position_id = p.id
		ORDER BY p.name, c.votes DESC, c.name
	`)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	grouped := make(map[string][]models.Candidate)
	for rows.Next() {
		var c models.Candidate
		var imagePath sql.NullString
		if err := rows.Scan(&c.ID, &c.IDNumber, &c.Name, &c.Position, &c.Year, &imagePath, &c.Votes, &c.CreatedAt); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		c.ImagePath = imagePath.String
		grouped[c.Position] = append(grouped[c.Position], c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, grouped)
}

// ResetVotes handles PUT /api/admins/reset-votes
// Zeroes every candidate counter and clears every hasVoted flag in one
// transaction, so a half-reset election is never observable.
func (h *AdminHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE candidate SET votes = 0`); err != nil {
		slog.Error("failed to reset candidate votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset votes")
		return
	}

	if _, err := tx.Exec(`UPDATE student SET has_voted = FALSE`); err != nil {
		slog.Error("failed to reset voted flags", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset votes")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset votes")
		return
	}

	slog.Info("election reset")

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "All candidate votes and student voting status reset successfully",
	})
}
