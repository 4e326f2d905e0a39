package entity

import (
	"context"
	"errors"
	"testing"
)

func TestStoreRegister(t *testing.T) {
	s := NewStore()

	if err := s.RegisterSensor("sensor.a", "unknown", nil); err != nil {
		t.Fatalf("RegisterSensor() error = %v", err)
	}
	if err := s.RegisterSensor("sensor.a", "x", nil); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate register error = %v, want ErrExists", err)
	}
	if err := s.RegisterSensor("", "x", nil); !errors.Is(err, ErrInvalidID) {
		t.Errorf("empty id register error = %v, want ErrInvalidID", err)
	}
	if err := s.RegisterButton("button.a", nil, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("RegisterButton() error = %v", err)
	}

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStoreSetStateReplacesAttributes(t *testing.T) {
	s := NewStore()
	s.RegisterSensor("sensor.a", "unknown", map[string]any{"old": "value"})

	if err := s.SetState("sensor.a", "100", map[string]any{"DoorId": "100"}); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}

	st, ok := s.GetState("sensor.a")
	if !ok {
		t.Fatal("GetState() not found after SetState")
	}
	if st.Value != "100" {
		t.Errorf("Value = %q, want %q", st.Value, "100")
	}
	if _, stale := st.Attributes["old"]; stale {
		t.Error("attributes were merged, want wholesale replacement")
	}
	if st.Attributes["DoorId"] != "100" {
		t.Errorf("Attributes[DoorId] = %v, want 100", st.Attributes["DoorId"])
	}
	if st.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}

	if err := s.SetState("sensor.missing", "x", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetState(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStoreObservers(t *testing.T) {
	s := NewStore()
	s.RegisterSensor("sensor.a", "unknown", nil)

	var seen []State
	s.Subscribe(func(st State) { seen = append(seen, st) })

	s.SetState("sensor.a", "1", map[string]any{"n": 1})
	s.SetState("sensor.a", "2", map[string]any{"n": 2})

	if len(seen) != 2 {
		t.Fatalf("observer saw %d updates, want 2", len(seen))
	}
	if seen[0].Value != "1" || seen[1].Value != "2" {
		t.Errorf("observer values = %q, %q; want 1, 2", seen[0].Value, seen[1].Value)
	}

	// The observer's copy must be isolated from later mutation.
	seen[0].Attributes["n"] = 99
	st, _ := s.GetState("sensor.a")
	if st.Attributes["n"] != 2 {
		t.Errorf("store attributes = %v, want isolated from observer copy", st.Attributes["n"])
	}
}

func TestStoreAttributeIsolation(t *testing.T) {
	attrs := map[string]any{"k": "v"}
	s := NewStore()
	s.RegisterSensor("sensor.a", "x", attrs)

	// Mutating the caller's map must not leak into the store.
	attrs["k"] = "mutated"
	st, _ := s.GetState("sensor.a")
	if st.Attributes["k"] != "v" {
		t.Errorf("Attributes[k] = %v, want v", st.Attributes["k"])
	}

	// Mutating a returned copy must not leak either.
	st.Attributes["k"] = "mutated"
	again, _ := s.GetState("sensor.a")
	if again.Attributes["k"] != "v" {
		t.Errorf("Attributes[k] after copy mutation = %v, want v", again.Attributes["k"])
	}
}

func TestStoreEnumerationOrder(t *testing.T) {
	s := NewStore()
	s.RegisterSensor("sensor.c", "x", nil)
	s.RegisterButton("button.b", nil, func(context.Context) error { return nil })
	s.RegisterSensor("sensor.a", "x", nil)

	sensors := s.Sensors()
	wantSensors := []string{"sensor.c", "sensor.a"}
	if len(sensors) != len(wantSensors) {
		t.Fatalf("Sensors() returned %d, want %d", len(sensors), len(wantSensors))
	}
	for i, id := range wantSensors {
		if sensors[i].EntityID != id {
			t.Errorf("Sensors()[%d] = %q, want %q (registration order)", i, sensors[i].EntityID, id)
		}
	}

	all := s.All()
	wantAll := []string{"sensor.c", "button.b", "sensor.a"}
	for i, id := range wantAll {
		if all[i].EntityID != id {
			t.Errorf("All()[%d] = %q, want %q", i, all[i].EntityID, id)
		}
	}
}

func TestStorePress(t *testing.T) {
	s := NewStore()
	pressed := 0
	s.RegisterButton("button.a", nil, func(context.Context) error {
		pressed++
		return nil
	})
	s.RegisterSensor("sensor.a", "x", nil)

	if err := s.Press(context.Background(), "button.a"); err != nil {
		t.Fatalf("Press() error = %v", err)
	}
	if pressed != 1 {
		t.Errorf("press handler invoked %d times, want 1", pressed)
	}

	if err := s.Press(context.Background(), "sensor.a"); !errors.Is(err, ErrNotAButton) {
		t.Errorf("Press(sensor) error = %v, want ErrNotAButton", err)
	}
	if err := s.Press(context.Background(), "button.missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Press(missing) error = %v, want ErrNotFound", err)
	}
}
