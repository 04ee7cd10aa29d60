package models

import "time"

// Request types

type StudentLoginRequest struct {
	IndexNumber string `json:"indexNumber"`
}

// position name -> candidate id; empty values are abstentions
type SubmitVoteRequest struct {
	StudentID string            `json:"studentId"`
	Votes     map[string]string `json:"votes"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AddCandidateRequest struct {
	IDNumber  string `json:"idNumber"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	Year      string `json:"year"`
	ImagePath string `json:"imagePath"`
}

type AddVoterRequest struct {
	Name        string `json:"name"`
	IndexNumber string `json:"indexNumber"`
	Class       string `json:"class"`
	Year        string `json:"year"`
}

type BulkImportRequest struct {
	Voters []AddVoterRequest `json:"voters"`
}

type AddPositionRequest struct {
	Name string `json:"name"`
}

type SaveSettingsRequest struct {
	StartTime     time.Time `json:"startDateTime"`
	EndTime       time.Time `json:"endDateTime"`
	VotersAuthKey string    `json:"votersAuthKey"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type StudentLoginResponse struct {
	Message string          `json:"message"`
	Student StudentIdentity `json:"student"`
}

// StudentIdentity carries the non-sensitive fields returned at login
// and echoed back into the vote submission.
type StudentIdentity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IndexNumber string `json:"indexNumber"`
	Class       string `json:"class"`
	Year        string `json:"year"`
}

type AdminLoginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Admin   AdminIdentity `json:"admin"`
}

type AdminIdentity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type StatsResponse struct {
	TotalVoters int `json:"totalVoters"`
	Voted       int `json:"voted"`
	NotVoted    int `json:"notVoted"`
}

type BulkImportResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

type SettingsResponse struct {
	Message  string           `json:"message"`
	Settings ElectionSettings `json:"settings"`
}

// Domain types

type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	IndexNumber  string    `json:"indexNumber"`
	Class        string    `json:"class"`
	Year         string    `json:"year"`
	HasVoted     bool      `json:"hasVoted"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type Position struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Candidate struct {
	ID        string    `json:"id"`
	IDNumber  string    `json:"idNumber"`
	Name      string    `json:"name"`
	Position  string    `json:"position"` // position name, resolved via position_id
	Year      string    `json:"year"`
	ImagePath string    `json:"imagePath"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"createdAt"`
}

// CandidateSummary is the student-facing candidate shape: no vote counts.
type CandidateSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"imagePath"`
}

type ElectionSettings struct {
	StartTime     time.Time `json:"startDateTime"`
	EndTime       time.Time `json:"endDateTime"`
	VotersAuthKey string    `json:"votersAuthKey"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ValidatedVote is one (candidate, position) pair that passed ballot
// validation and is ready to tally.
type ValidatedVote struct {
	CandidateID string
	Position    string
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
