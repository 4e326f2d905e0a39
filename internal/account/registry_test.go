package account

import (
	"errors"
	"testing"
)

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()

	if err := r.Add(&Account{EntryID: "a"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := r.Add(&Account{EntryID: "a"}); !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("duplicate Add() error = %v, want ErrDuplicateEntry", err)
	}
	if err := r.Add(&Account{}); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("empty Add() error = %v, want ErrInvalidEntry", err)
	}
	if err := r.Add(nil); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("nil Add() error = %v, want ErrInvalidEntry", err)
	}

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistrySelect(t *testing.T) {
	empty := NewRegistry()
	if _, ok := empty.Select(""); ok {
		t.Error("empty registry should select nothing")
	}
	if _, ok := empty.Select("a"); ok {
		t.Error("empty registry should select nothing even with an explicit request")
	}

	r := NewRegistry()
	r.Add(&Account{EntryID: "b"}) // registered first, deliberately not sorted first
	r.Add(&Account{EntryID: "a"})

	acct, ok := r.Select("a")
	if !ok || acct.EntryID != "a" {
		t.Errorf("Select(a) = %v, %v", acct, ok)
	}

	// An unknown request must not silently fall back to another account.
	if _, ok := r.Select("z"); ok {
		t.Error("Select(z) should not substitute a different account")
	}

	// Default is the first registered account, repeatably.
	for i := 0; i < 5; i++ {
		acct, ok := r.Select("")
		if !ok || acct.EntryID != "b" {
			t.Fatalf("Select(\"\") = %v, %v; want first-registered b", acct, ok)
		}
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Add(&Account{EntryID: "c"})
	r.Add(&Account{EntryID: "a"})
	r.Add(&Account{EntryID: "b"})

	got := r.List()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d accounts, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].EntryID != id {
			t.Errorf("List()[%d] = %q, want %q (registration order)", i, got[i].EntryID, id)
		}
	}
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	r.Add(&Account{EntryID: "a", Title: "flat 1"})

	acct, ok := r.Get("a")
	if !ok || acct.Title != "flat 1" {
		t.Errorf("Get(a) = %v, %v", acct, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should report not found")
	}
}
