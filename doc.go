// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Classvote API server.

Classvote is a school election platform: administrators register voters
(students), positions, and candidates, and configure a voting window;
students log in with their index number and cast exactly one ballot
across the elected positions.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 5000 -d "postgres://..." -jwt-secret "..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): Secret for signing admin session tokens

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - ADMIN_NAME / ADMIN_EMAIL / ADMIN_PASSWORD: Seed an initial admin
    account at startup when the admin table is empty

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (voting, admin, candidates, voters,
    positions, settings) plus the core election workflow (eligibility,
    ballot validation, tallying)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, admin auth guard
  - models: Request/response types
  - auth: Password hashing and admin token issue/verify
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
