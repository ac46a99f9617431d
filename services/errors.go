package services

import "errors"

// Sentinel errors the HTTP layer maps to response statuses.
var (
	// ErrItemNotFound is returned by the store when a key has no item.
	ErrItemNotFound = errors.New("item not found")

	// ErrProfileNotFound is returned when a user profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrMatchNotFound is returned when no match exists for a key.
	ErrMatchNotFound = errors.New("match not found")

	// ErrInvalidInput is returned for malformed or unacceptable input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAMatchParticipant is returned when a user acts on a match
	// they are not part of.
	ErrNotAMatchParticipant = errors.New("user is not a participant of this match")
)
