// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/classvote/models"
	"github.com/danielhkuo/classvote/testutil"
)

// TestConcurrentDoubleVote verifies that N simultaneous submissions from
// the same student tally exactly one ballot: the hasVoted compare-and-set
// inside the tally transaction lets one request through and rejects the
// rest with 403.
func TestConcurrentDoubleVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	positionID := testutil.CreateTestPosition(t, db, "Head Boy")
	candID := testutil.CreateTestCandidate(t, db, "STU-010", "Yaw Darko", positionID)
	studentID := testutil.CreateTestStudent(t, db, "Ama Mensah", "STU-001", false)

	numAttempts := 10

	var successCount atomic.Int32
	var forbiddenCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/students/vote", models.SubmitVoteRequest{
				StudentID: studentID,
				Votes:     map[string]string{"Head Boy": candID},
			}, nil)
			w := httptest.NewRecorder()

			handler.SubmitVote(w, req)

			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusForbidden:
				forbiddenCount.Add(1)
			}
		}()
	}

	wg.Wait()

	// Exactly one submission wins
	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if forbiddenCount.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d forbidden responses, got %d", numAttempts-1, forbiddenCount.Load())
	}

	// The counter moved exactly once
	if got := testutil.CandidateVotes(t, db, candID); got != 1 {
		t.Errorf("Candidate votes = %d, want 1 (double count detected)", got)
	}
	if !testutil.StudentHasVoted(t, db, studentID) {
		t.Error("Student should be marked as voted")
	}
}

// TestConcurrentVotesForSameCandidate verifies that counter increments
// from different students never lose updates: votes = votes + 1 runs at
// the storage layer, not read-modify-write in process memory.
func TestConcurrentVotesForSameCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	positionID := testutil.CreateTestPosition(t, db, "Head Boy")
	candID := testutil.CreateTestCandidate(t, db, "STU-010", "Yaw Darko", positionID)

	numVoters := 10
	studentIDs := make([]string, numVoters)
	for i := 0; i < numVoters; i++ {
		studentIDs[i] = testutil.CreateTestStudent(t, db,
			fmt.Sprintf("Voter %d", i), fmt.Sprintf("STU-%03d", 100+i), false)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/students/vote", models.SubmitVoteRequest{
				StudentID: studentIDs[idx],
				Votes:     map[string]string{"Head Boy": candID},
			}, nil)
			w := httptest.NewRecorder()

			handler.SubmitVote(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	if got := testutil.CandidateVotes(t, db, candID); got != numVoters {
		t.Errorf("Candidate votes = %d, want %d (lost update detected)", got, numVoters)
	}

	// Every student is marked as voted
	var voted int
	if err := db.QueryRow(`SELECT COUNT(*) FROM student WHERE has_voted`).Scan(&voted); err != nil {
		t.Fatalf("Failed to count voted students: %v", err)
	}
	if voted != numVoters {
		t.Errorf("Expected %d voted students, got %d", numVoters, voted)
	}
}
