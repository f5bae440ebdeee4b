package models

import "time"

// Task belongs to exactly one user. ID and UserID are immutable after
// creation; only Title and Description may change.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
