// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and admin session tokens.

# Passwords

Admin passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(plaintext)
	err = auth.CheckPassword(plaintext, hash)

# Admin Tokens

Admin sessions use HS256-signed JWTs carrying the admin id and email:

	token, err := auth.GenerateAdminToken(adminID, email, secret)
	claims, err := auth.ValidateAdminToken(token, secret)

Tokens expire after 12 hours. The signing secret comes from
configuration (JWT_SECRET); validation failures return an error from
the jwt library or ErrInvalidToken.

Students do not authenticate with tokens - the voting flow identifies
them by index number and the hasVoted flag gates re-entry.
*/
package auth
