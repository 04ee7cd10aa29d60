// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to stay wire-compatible with the
original frontend (indexNumber, studentId, hasVoted, ...).

# Request Types

Types for parsing incoming JSON:

  - StudentLoginRequest: indexNumber
  - SubmitVoteRequest: studentId, votes (map[positionName]candidateID)
  - AdminLoginRequest: email, password
  - ChangePasswordRequest: email, currentPassword, newPassword
  - AddCandidateRequest: idNumber, name, position, year, imagePath
  - AddVoterRequest: name, indexNumber, class, year
  - BulkImportRequest: voters ([]AddVoterRequest)
  - AddPositionRequest: name
  - SaveSettingsRequest: startDateTime, endDateTime, votersAuthKey

# Response Types

Types for JSON responses:

  - MessageResponse: message
  - StudentLoginResponse: message, student (non-sensitive identity)
  - AdminLoginResponse: message, token, admin
  - StatsResponse: totalVoters, voted, notVoted
  - BulkImportResponse: message, imported, skipped
  - SettingsResponse: message, settings
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Student: voter roll entry with the hasVoted flag
  - Position: an elected position
  - Candidate: a candidate standing for one position, with vote counter
  - CandidateSummary: student-facing candidate shape (no vote counts)
  - ElectionSettings: the voting window singleton
  - ValidatedVote: a (candidate, position) pair that passed validation

In a submitted ballot an empty candidate id means the student abstained
for that position; abstentions are skipped, never rejected.
*/
package models
