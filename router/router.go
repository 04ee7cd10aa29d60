// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/classvote/cliparse"
	"github.com/danielhkuo/classvote/handlers"
	"github.com/danielhkuo/classvote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	candidateHandler := handlers.NewCandidateHandler(db, cfg)
	voterHandler := handlers.NewVoterHandler(db, cfg)
	positionHandler := handlers.NewPositionHandler(db, cfg)
	settingsHandler := handlers.NewSettingsHandler(db, cfg)

	// Admin routes require a valid bearer token on top of logging
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.JWTSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Student-facing voting flow (public)
	mux.HandleFunc("POST /api/students/login", middleware.WithLogging(votingHandler.Login))
	mux.HandleFunc("GET /api/students/candidates", middleware.WithLogging(votingHandler.ListCandidates))
	mux.HandleFunc("POST /api/students/vote", middleware.WithLogging(votingHandler.SubmitVote))

	// Admin authentication
	mux.HandleFunc("POST /api/admins/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("PUT /api/admins/change-password", admin(adminHandler.ChangePassword))

	// Admin dashboard
	mux.HandleFunc("GET /api/admins/stats", admin(adminHandler.Stats))
	mux.HandleFunc("GET /api/admins/results", admin(adminHandler.Results))
	mux.HandleFunc("PUT /api/admins/reset-votes", admin(adminHandler.ResetVotes))

	// Candidate management
	mux.HandleFunc("POST /api/admins/candidates", admin(candidateHandler.Add))
	mux.HandleFunc("GET /api/admins/candidates/{id}", admin(candidateHandler.Get))
	mux.HandleFunc("PUT /api/admins/candidates/{id}", admin(candidateHandler.Update))
	mux.HandleFunc("DELETE /api/admins/candidates/{id}", admin(candidateHandler.Delete))

	// Voter roll management
	mux.HandleFunc("GET /api/admins/students", admin(voterHandler.List))
	mux.HandleFunc("POST /api/admins/voters", admin(voterHandler.Add))
	mux.HandleFunc("POST /api/admins/voters/bulk", admin(voterHandler.BulkImport))
	mux.HandleFunc("DELETE /api/admins/voters/{id}", admin(voterHandler.Delete))

	// Positions
	mux.HandleFunc("GET /api/positions", middleware.WithLogging(positionHandler.List))
	mux.HandleFunc("POST /api/admins/positions", admin(positionHandler.Add))
	mux.HandleFunc("DELETE /api/admins/positions/{id}", admin(positionHandler.Delete))

	// Election settings (window is public so the voter portal can show it)
	mux.HandleFunc("GET /api/settings", middleware.WithLogging(settingsHandler.Get))
	mux.HandleFunc("POST /api/settings", admin(settingsHandler.Save))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("classvote API v1"))
	})

	return mux
}
