package entities

import "time"

// User is the internal record for an externally verified subject.
// Name and Bio stay empty until the profile is completed.
type User struct {
	ID        string
	Subject   string
	Name      string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
