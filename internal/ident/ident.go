// Package ident generates identifiers and timestamps for persisted artifacts.
package ident

import (
	"time"

	"github.com/google/uuid"
)

// Stamper produces IDs and creation times. The zero value uses uuid.New and
// the wall clock in UTC.
type Stamper struct {
	NewID func() uuid.UUID
	Now   func() time.Time
}

// ID returns a new identifier as a string
func (s Stamper) ID() string {
	if s.NewID != nil {
		return s.NewID().String()
	}
	return uuid.New().String()
}

// Time returns the current time in UTC
func (s Stamper) Time() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Fixed returns a Stamper that always yields the given ID and time
func Fixed(id uuid.UUID, at time.Time) Stamper {
	return Stamper{
		NewID: func() uuid.UUID { return id },
		Now:   func() time.Time { return at },
	}
}

// IsValid reports whether s parses as a UUID
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
