package entity

import "errors"

// Domain errors for the entity package.
var (
	// ErrNotFound is returned when an entity id does not exist.
	ErrNotFound = errors.New("entity: not found")

	// ErrExists is returned when registering an entity id that already exists.
	ErrExists = errors.New("entity: already registered")

	// ErrNotAButton is returned when pressing an entity that is not a button.
	ErrNotAButton = errors.New("entity: not a button")

	// ErrInvalidID is returned when registering an entity without an id.
	ErrInvalidID = errors.New("entity: id is required")
)
