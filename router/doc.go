// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes using Go 1.22+ method-based routing.

# Route Structure

Student-facing (public):

	POST /api/students/login       → student eligibility + identity
	GET  /api/students/candidates  → candidates grouped by position
	POST /api/students/vote        → cast the ballot

Admin (JWT-guarded except login):

	POST   /api/admins/login
	PUT    /api/admins/change-password
	GET    /api/admins/stats
	GET    /api/admins/results
	PUT    /api/admins/reset-votes
	POST   /api/admins/candidates
	GET    /api/admins/candidates/{id}
	PUT    /api/admins/candidates/{id}
	DELETE /api/admins/candidates/{id}
	GET    /api/admins/students
	POST   /api/admins/voters
	POST   /api/admins/voters/bulk
	DELETE /api/admins/voters/{id}
	POST   /api/admins/positions
	DELETE /api/admins/positions/{id}

Shared:

	GET  /api/positions
	GET  /api/settings
	POST /api/settings (admin)
	GET  /health

All handlers are wrapped with middleware.WithLogging; admin routes are
additionally wrapped with middleware.RequireAdmin.
*/
package router
