// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/classvote/models"
	"github.com/danielhkuo/classvote/testutil"
)

func TestListVoters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoterHandler(db, cfg)

	testutil.CreateTestStudent(t, db, "Kofi Boateng", "STU-002", false)
	testutil.CreateTestStudent(t, db, "Ama Mensah", "STU-001", true)

	req := testutil.MakeRequest("GET", "/api/admins/students", nil, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var students []models.Student
	testutil.AssertJSON(t, w, &students)

	if len(students) != 2 {
		t.Fatalf("Expected 2 students, got %d", len(students))
	}
	// Ordered by name
	if students[0].Name != "Ama Mensah" || students[1].Name != "Kofi Boateng" {
		t.Errorf("Expected name order [Ama Mensah, Kofi Boateng], got [%s, %s]",
			students[0].Name, students[1].Name)
	}
	if !students[0].HasVoted {
		t.Error("Expected Ama Mensah to be marked as voted")
	}
}

func TestAddVoter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoterHandler(db, cfg)

	tests := []struct {
		name           string
		requestBody    models.AddVoterRequest
		expectedStatus int
	}{
		{
			name: "valid voter",
			requestBody: models.AddVoterRequest{
				Name: "Ama Mensah", IndexNumber: "STU-001", Class: "Form 3A", Year: "2025",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate index number",
			requestBody: models.AddVoterRequest{
				Name: "Other Ama", IndexNumber: "STU-001", Class: "Form 3B", Year: "2025",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing fields",
			requestBody:    models.AddVoterRequest{Name: "Ama Mensah"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/admins/voters", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Add(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestBulkImport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoterHandler(db, cfg)

	testutil.CreateTestStudent(t, db, "Ama Mensah", "STU-001", false)

	t.Run("mix of new and existing voters", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/admins/voters/bulk", models.BulkImportRequest{
			Voters: []models.AddVoterRequest{
				{Name: "Ama Mensah", IndexNumber: "STU-001", Class: "Form 3A", Year: "2025"},
				{Name: "Kofi Boateng", IndexNumber: "STU-002", Class: "Form 3A", Year: "2025"},
				{Name: "Esi Owusu", IndexNumber: "STU-003", Class: "Form 3B", Year: "2025"},
			},
		}, nil)
		w := httptest.NewRecorder()

		handler.BulkImport(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.BulkImportResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Imported != 2 {
			t.Errorf("Imported = %d, want 2", resp.Imported)
		}
		if resp.Skipped != 1 {
			t.Errorf("Skipped = %d, want 1", resp.Skipped)
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM student`).Scan(&count); err != nil {
			t.Fatalf("Failed to count students: %v", err)
		}
		if count != 3 {
			t.Errorf("Student count = %d, want 3", count)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/admins/voters/bulk", models.BulkImportRequest{}, nil)
		w := httptest.NewRecorder()

		handler.BulkImport(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("incomplete row fails whole batch", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/admins/voters/bulk", models.BulkImportRequest{
			Voters: []models.AddVoterRequest{
				{Name: "Yaa Asantewaa", IndexNumber: "STU-004", Class: "Form 3A", Year: "2025"},
				{Name: "", IndexNumber: "STU-005", Class: "Form 3A", Year: "2025"},
			},
		}, nil)
		w := httptest.NewRecorder()

		handler.BulkImport(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM student WHERE index_number = 'STU-004'`).Scan(&count); err != nil {
			t.Fatalf("Failed to count students: %v", err)
		}
		if count != 0 {
			t.Error("Valid row from a rejected batch was imported")
		}
	})
}

func TestDeleteVoter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVoterHandler(db, cfg)

	studentID := testutil.CreateTestStudent(t, db, "Ama Mensah", "STU-001", false)

	t.Run("existing voter", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/admins/voters/"+studentID, nil, nil)
		req.SetPathValue("id", studentID)
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("already deleted", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/admins/voters/"+studentID, nil, nil)
		req.SetPathValue("id", studentID)
		w := httptest.NewRecorder()

		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
