// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - student: The voter roll, one row per registered student
  - position: Elected positions (Head Boy, Head Girl, ...)
  - candidate: Candidates standing for a position, with vote counters
  - admin: Administrator accounts
  - election_settings: Voting window singleton (one row, id = 1)

# Relationships

	position 1──* candidate (ON DELETE RESTRICT)

A candidate's id_number references a student's index_number by value
rather than by key: candidates are entered from the same roll but the
records deliberately stay independent so deleting a voter does not
take a candidate with it.

# Invariants enforced here

  - student.index_number is unique
  - at most one candidate per (id_number, position_id)
  - candidate.votes can never go negative
  - election_settings.end_time must be after start_time
*/
package db
