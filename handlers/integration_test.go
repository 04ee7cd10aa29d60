// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/classvote/models"
	"github.com/danielhkuo/classvote/testutil"
)

// TestFullElectionWorkflow walks an election end to end: the admin sets
// up positions, candidates, the voter roll and the window, students log
// in and vote, and the admin reads results and resets for the next run.
func TestFullElectionWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(db, cfg)
	adminHandler := NewAdminHandler(db, cfg)
	candidateHandler := NewCandidateHandler(db, cfg)
	voterHandler := NewVoterHandler(db, cfg)
	positionHandler := NewPositionHandler(db, cfg)
	settingsHandler := NewSettingsHandler(db, cfg)

	// Admin sets up the ballot
	w := httptest.NewRecorder()
	positionHandler.Add(w, testutil.MakeRequest("POST", "/api/admins/positions",
		models.AddPositionRequest{Name: "Head Boy"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	positionHandler.Add(w, testutil.MakeRequest("POST", "/api/admins/positions",
		models.AddPositionRequest{Name: "Head Girl"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Admin imports the voter roll
	w = httptest.NewRecorder()
	voterHandler.BulkImport(w, testutil.MakeRequest("POST", "/api/admins/voters/bulk",
		models.BulkImportRequest{Voters: []models.AddVoterRequest{
			{Name: "Ama Mensah", IndexNumber: "STU-001", Class: "Form 3A", Year: "2025"},
			{Name: "Kofi Boateng", IndexNumber: "STU-002", Class: "Form 3A", Year: "2025"},
			{Name: "Yaw Darko", IndexNumber: "STU-010", Class: "Form 3B", Year: "2025"},
			{Name: "Esi Owusu", IndexNumber: "STU-012", Class: "Form 3B", Year: "2025"},
		}}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Candidates come from the roll
	w = httptest.NewRecorder()
	candidateHandler.Add(w, testutil.MakeRequest("POST", "/api/admins/candidates",
		models.AddCandidateRequest{IDNumber: "STU-010", Name: "Yaw Darko", Position: "Head Boy", Year: "2025"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	candidateHandler.Add(w, testutil.MakeRequest("POST", "/api/admins/candidates",
		models.AddCandidateRequest{IDNumber: "STU-012", Name: "Esi Owusu", Position: "Head Girl", Year: "2025"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Admin opens the voting window
	w = httptest.NewRecorder()
	settingsHandler.Save(w, testutil.MakeRequest("POST", "/api/settings",
		models.SaveSettingsRequest{
			StartTime:     time.Now().Add(-time.Hour),
			EndTime:       time.Now().Add(8 * time.Hour),
			VotersAuthKey: "election-2025",
		}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// A student logs in with their index number
	w = httptest.NewRecorder()
	votingHandler.Login(w, testutil.MakeRequest("POST", "/api/students/login",
		models.StudentLoginRequest{IndexNumber: "STU-001"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var login models.StudentLoginResponse
	testutil.AssertJSON(t, w, &login)

	// The student fetches the ballot
	w = httptest.NewRecorder()
	votingHandler.ListCandidates(w, testutil.MakeRequest("GET", "/api/students/candidates", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var ballot map[string][]models.CandidateSummary
	testutil.AssertJSON(t, w, &ballot)
	if len(ballot["Head Boy"]) != 1 || len(ballot["Head Girl"]) != 1 {
		t.Fatalf("Unexpected ballot shape: %+v", ballot)
	}
	headBoyCand := ballot["Head Boy"][0].ID
	headGirlCand := ballot["Head Girl"][0].ID

	// The student votes for both positions at once
	w = httptest.NewRecorder()
	votingHandler.SubmitVote(w, testutil.MakeRequest("POST", "/api/students/vote",
		models.SubmitVoteRequest{
			StudentID: login.Student.ID,
			Votes:     map[string]string{"Head Boy": headBoyCand, "Head Girl": headGirlCand},
		}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// A second login from the same student is now rejected
	w = httptest.NewRecorder()
	votingHandler.Login(w, testutil.MakeRequest("POST", "/api/students/login",
		models.StudentLoginRequest{IndexNumber: "STU-001"}, nil))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// A second student votes for Head Boy only
	w = httptest.NewRecorder()
	votingHandler.Login(w, testutil.MakeRequest("POST", "/api/students/login",
		models.StudentLoginRequest{IndexNumber: "STU-002"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var secondLogin models.StudentLoginResponse
	testutil.AssertJSON(t, w, &secondLogin)

	w = httptest.NewRecorder()
	votingHandler.SubmitVote(w, testutil.MakeRequest("POST", "/api/students/vote",
		models.SubmitVoteRequest{
			StudentID: secondLogin.Student.ID,
			Votes:     map[string]string{"Head Boy": headBoyCand, "Head Girl": ""},
		}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// The dashboard reflects both turnout and the tallies
	w = httptest.NewRecorder()
	adminHandler.Stats(w, testutil.MakeRequest("GET", "/api/admins/stats", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var stats models.StatsResponse
	testutil.AssertJSON(t, w, &stats)
	if stats.TotalVoters != 4 || stats.Voted != 2 || stats.NotVoted != 2 {
		t.Errorf("Stats = %+v, want totalVoters=4 voted=2 notVoted=2", stats)
	}

	w = httptest.NewRecorder()
	adminHandler.Results(w, testutil.MakeRequest("GET", "/api/admins/results", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var results map[string][]models.Candidate
	testutil.AssertJSON(t, w, &results)
	if got := results["Head Boy"][0].Votes; got != 2 {
		t.Errorf("Head Boy votes = %d, want 2", got)
	}
	if got := results["Head Girl"][0].Votes; got != 1 {
		t.Errorf("Head Girl votes = %d, want 1", got)
	}

	// Reset clears everything for the next election
	w = httptest.NewRecorder()
	adminHandler.ResetVotes(w, testutil.MakeRequest("PUT", "/api/admins/reset-votes", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	votingHandler.Login(w, testutil.MakeRequest("POST", "/api/students/login",
		models.StudentLoginRequest{IndexNumber: "STU-001"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	if got := testutil.CandidateVotes(t, db, headBoyCand); got != 0 {
		t.Errorf("Head Boy votes = %d after reset, want 0", got)
	}
}
