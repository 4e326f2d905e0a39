package entity

import (
	"context"
	"time"
)

// Kind classifies an entity.
type Kind string

// Supported entity kinds.
const (
	KindSensor Kind = "sensor"
	KindButton Kind = "button"
)

// State is the published state of an entity.
//
// Attributes are replaced wholesale on every update, never merged; the
// stored map is always a private copy.
type State struct {
	EntityID   string         `json:"entity_id"`
	Kind       Kind           `json:"kind"`
	Value      string         `json:"value"`
	Attributes map[string]any `json:"attributes,omitempty"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// PressFunc is invoked when a button entity is pressed.
type PressFunc func(ctx context.Context) error

// Observer receives a copy of an entity's state after each change.
// Observers are called synchronously; they must not block.
type Observer func(st State)

// copyAttributes returns a shallow copy of attrs.
// Event payloads and key records are flat maps of simple values, so a
// shallow copy is sufficient isolation.
func copyAttributes(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	cpy := make(map[string]any, len(attrs))
	for k, v := range attrs {
		cpy[k] = v
	}
	return cpy
}
