package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt hash of the
// secret; the plaintext is never stored and the hash never leaves the server
// (external views are built from DTOs that have no hash field at all).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	// MemberSince is a human-readable snapshot taken once at signup,
	// e.g. "January 2, 2006". It does not change afterwards.
	MemberSince string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
