package domain

import "github.com/google/uuid"

// IDGenerator produces unique entity identifiers.
type IDGenerator func() string

// NewID returns a random identifier.
func NewID() string {
	return uuid.NewString()
}
