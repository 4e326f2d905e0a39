package entity

import (
	"context"
	"sync"
	"time"
)

// Store is the in-memory registry of this bridge's entities.
//
// Registration order is preserved: Sensors() and All() enumerate in the
// order entities were registered, giving discovery scans a stable,
// documented tie-break instead of map-iteration randomness.
//
// All public methods are thread-safe.
type Store struct {
	mu        sync.RWMutex
	entities  map[string]*entry
	order     []string
	observers []Observer
}

// entry holds one registered entity.
type entry struct {
	state State
	press PressFunc // non-nil for buttons only
}

// NewStore creates an empty entity store.
func NewStore() *Store {
	return &Store{
		entities: make(map[string]*entry),
	}
}

// Subscribe registers an observer for state changes.
//
// Observers are invoked synchronously after every sensor update, in
// subscription order, with a copy of the new state.
func (s *Store) Subscribe(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// RegisterSensor adds a sensor entity with an initial value and attributes.
func (s *Store) RegisterSensor(entityID, value string, attrs map[string]any) error {
	return s.register(entityID, &entry{
		state: State{
			EntityID:   entityID,
			Kind:       KindSensor,
			Value:      value,
			Attributes: copyAttributes(attrs),
			UpdatedAt:  time.Now().UTC(),
		},
	})
}

// RegisterButton adds a button entity with a press handler.
func (s *Store) RegisterButton(entityID string, attrs map[string]any, press PressFunc) error {
	return s.register(entityID, &entry{
		state: State{
			EntityID:   entityID,
			Kind:       KindButton,
			Attributes: copyAttributes(attrs),
			UpdatedAt:  time.Now().UTC(),
		},
		press: press,
	})
}

func (s *Store) register(entityID string, e *entry) error {
	if entityID == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entities[entityID]; exists {
		return ErrExists
	}

	s.entities[entityID] = e
	s.order = append(s.order, entityID)
	return nil
}

// SetState replaces a sensor's value and attributes and notifies observers.
//
// Attributes are replaced wholesale, not merged. The update and the
// observer notifications happen on the calling goroutine; observers see
// states in write order for any single writer.
func (s *Store) SetState(entityID, value string, attrs map[string]any) error {
	s.mu.Lock()
	e, ok := s.entities[entityID]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}

	e.state.Value = value
	e.state.Attributes = copyAttributes(attrs)
	e.state.UpdatedAt = time.Now().UTC()
	snapshot := e.state
	snapshot.Attributes = copyAttributes(e.state.Attributes)

	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	// Notify outside the lock so observers can read the store.
	for _, obs := range observers {
		obs(snapshot)
	}

	return nil
}

// GetState returns a copy of an entity's current state.
func (s *Store) GetState(entityID string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[entityID]
	if !ok {
		return State{}, false
	}

	st := e.state
	st.Attributes = copyAttributes(e.state.Attributes)
	return st, true
}

// Sensors returns all sensor states in registration order.
func (s *Store) Sensors() []State {
	return s.list(KindSensor)
}

// All returns all entity states in registration order.
func (s *Store) All() []State {
	return s.list("")
}

func (s *Store) list(kind Kind) []State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make([]State, 0, len(s.order))
	for _, id := range s.order {
		e := s.entities[id]
		if kind != "" && e.state.Kind != kind {
			continue
		}
		st := e.state
		st.Attributes = copyAttributes(e.state.Attributes)
		states = append(states, st)
	}
	return states
}

// Press invokes a button entity's press handler.
func (s *Store) Press(ctx context.Context, entityID string) error {
	s.mu.RLock()
	e, ok := s.entities[entityID]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if e.press == nil {
		return ErrNotAButton
	}

	return e.press(ctx)
}

// Len returns the number of registered entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
