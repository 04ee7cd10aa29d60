// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Classvote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - VotingHandler: Student login, candidate list, and vote submission
  - AdminHandler: Admin login, password change, stats, results, reset
  - CandidateHandler: Candidate CRUD
  - VoterHandler: Voter roll management and bulk import
  - PositionHandler: Position management
  - SettingsHandler: Voting window singleton

Handlers are created via constructor functions that accept *sql.DB and Config:

	votingHandler := handlers.NewVotingHandler(db, cfg)

# Voting Flow

Students log in with their index number and submit one ballot:

	POST /api/students/login      → Login (eligibility + window check)
	GET  /api/students/candidates → ListCandidates (grouped by position)
	POST /api/students/vote       → SubmitVote

# The Election Workflow

The core of the system lives in election.go as plain functions:

	student, err := CheckEligibility(db, studentID)
	validated, err := ValidateBallot(db, selections)
	err = ApplyVotes(tx, student.ID, validated)

SubmitVote composes them in a strict order: eligibility and ballot
validation are read-only, and tallying happens inside one transaction
that claims the hasVoted flag with a compare-and-set before any counter
moves. Two submissions racing past the eligibility check therefore
resolve to exactly one tallied ballot; the loser gets 403.

A ballot is all-or-nothing: a single invalid or stale selection rejects
the whole submission before any mutation. Positions left unselected are
abstentions and simply skipped.

# Admin Operations

Admin routes are guarded by middleware.RequireAdmin and a JWT from
POST /api/admins/login. Mutations cover candidates, the voter roll
(single add, transactional bulk import, delete), positions, the voting
window, and a full election reset (counters zeroed and hasVoted flags
cleared in one transaction).
*/
package handlers
