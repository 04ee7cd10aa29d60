// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/classvote/models"
)

// Eligibility and validation failures. Handlers map these onto HTTP
// status codes; none of them leaves any mutation behind.
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrAlreadyVoted     = errors.New("student has already voted")
	ErrNotConfigured    = errors.New("election is not configured")
	ErrVotingClosed     = errors.New("voting window is closed")
	ErrInvalidCandidate = errors.New("invalid candidate")
	ErrPositionMismatch = errors.New("candidate does not stand for this position")
)

// BallotError reports which position of a submitted ballot failed
// validation. Unwraps to ErrInvalidCandidate or ErrPositionMismatch.
type BallotError struct {
	Position string
	Err      error
}

func (e *BallotError) Error() string {
	return fmt.Sprintf("%v for %q", e.Err, e.Position)
}

func (e *BallotError) Unwrap() error {
	return e.Err
}

// CheckEligibility loads a student by internal id and verifies they may
// still vote. Read-only: the hasVoted flag is only flipped by ApplyVotes.
func CheckEligibility(db *sql.DB, studentID string) (models.Student, error) {
	return checkStudent(db, `
		SELECT id, name, index_number, class, year, has_voted, registered_at
		FROM student WHERE id = $1
	`, studentID)
}

// CheckLoginEligibility is the login-path variant: it looks the student
// up by index number and additionally gates on the voting window. The
// settings snapshot is passed in so the whole decision uses one
// consistent read.
func CheckLoginEligibility(db *sql.DB, indexNumber string, settings *models.ElectionSettings, now time.Time) (models.Student, error) {
	if err := CheckVotingWindow(settings, now); err != nil {
		return models.Student{}, err
	}

	return checkStudent(db, `
		SELECT id, name, index_number, class, year, has_voted, registered_at
		FROM student WHERE index_number = $1
	`, indexNumber)
}

func checkStudent(db *sql.DB, query, arg string) (models.Student, error) {
	var s models.Student
	err := db.QueryRow(query, arg).Scan(
		&s.ID, &s.Name, &s.IndexNumber, &s.Class, &s.Year, &s.HasVoted, &s.RegisteredAt,
	)
	if err == sql.ErrNoRows {
		return models.Student{}, ErrStudentNotFound
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to load student: %w", err)
	}

	if s.HasVoted {
		return models.Student{}, ErrAlreadyVoted
	}

	return s, nil
}

// CheckVotingWindow verifies the current time falls inside the
// configured window. A nil settings value means no election has been
// configured yet.
func CheckVotingWindow(settings *models.ElectionSettings, now time.Time) error {
	if settings == nil {
		return ErrNotConfigured
	}
	if now.Before(settings.StartTime) || now.After(settings.EndTime) {
		return ErrVotingClosed
	}
	return nil
}

// LoadSettings reads the election settings singleton. Returns (nil, nil)
// when no settings row exists yet.
func LoadSettings(db *sql.DB) (*models.ElectionSettings, error) {
	var s models.ElectionSettings
	err := db.QueryRow(`
		SELECT start_time, end_time, voters_auth_key, updated_at
		FROM election_settings WHERE id = 1
	`).Scan(&s.StartTime, &s.EndTime, &s.VotersAuthKey, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &s, nil
}

// ValidateBallot checks every selection of a submitted ballot against
// the candidate catalog. Positions with an empty candidate id are
// abstentions and are skipped. Any selection that does not resolve to a
// candidate standing for that exact position fails the whole ballot
// (all-or-nothing); nothing is mutated here.
func ValidateBallot(db *sql.DB, selections map[string]string) ([]models.ValidatedVote, error) {
	validated := make([]models.ValidatedVote, 0, len(selections))

	for position, candidateID := range selections {
		if candidateID == "" {
			continue // abstention
		}

		var actualPosition string
		err := db.QueryRow(`
			SELECT p.name
			FROM candidate c
			JOIN position p ON c.position_id = p.id
			WHERE c.id = $1
		`, candidateID).Scan(&actualPosition)

		if err == sql.ErrNoRows {
			return nil, &BallotError{Position: position, Err: ErrInvalidCandidate}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load candidate: %w", err)
		}

		if actualPosition != position {
			return nil, &BallotError{Position: position, Err: ErrPositionMismatch}
		}

		validated = append(validated, models.ValidatedVote{
			CandidateID: candidateID,
			Position:    position,
		})
	}

	return validated, nil
}

// ApplyVotes tallies a validated ballot inside the caller's transaction.
//
// The hasVoted flag is claimed first with a compare-and-set: two
// submissions racing past CheckEligibility both reach this update, but
// only one sees has_voted = FALSE and gets to increment counters. The
// loser returns ErrAlreadyVoted and the caller rolls back, so a student
// can never be counted twice. Counter updates are in-place additions at
// the storage layer, never read-modify-write in process memory.
func ApplyVotes(tx *sql.Tx, studentID string, votes []models.ValidatedVote) error {
	res, err := tx.Exec(`
		UPDATE student SET has_voted = TRUE
		WHERE id = $1 AND has_voted = FALSE
	`, studentID)
	if err != nil {
		return fmt.Errorf("failed to mark student as voted: %w", err)
	}

	claimed, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if claimed == 0 {
		return ErrAlreadyVoted
	}

	for _, v := range votes {
		res, err := tx.Exec(`
			UPDATE candidate SET votes = votes + 1
			WHERE id = $1
		`, v.CandidateID)
		if err != nil {
			return fmt.Errorf("failed to increment votes for %q: %w", v.Position, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			// Candidate deleted between validation and tally
			return &BallotError{Position: v.Position, Err: ErrInvalidCandidate}
		}
	}

	return nil
}
