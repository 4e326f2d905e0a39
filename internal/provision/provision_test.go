package provision

import (
	"context"
	"errors"
	"testing"

	"github.com/nerrad567/gray-logic-intercom/internal/account"
	"github.com/nerrad567/gray-logic-intercom/internal/domonap"
	"github.com/nerrad567/gray-logic-intercom/internal/entity"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-intercom/internal/relay"
)

// fakeKeysClient serves a canned key listing.
type fakeKeysClient struct {
	page domonap.KeysPage
	err  error
}

func (f *fakeKeysClient) GetPagedKeys(context.Context) (domonap.KeysPage, error) {
	return f.page, f.err
}

func (f *fakeKeysClient) OpenRelayByDoorID(context.Context, string) (domonap.Result, error) {
	return domonap.Result{}, nil
}

func (f *fakeKeysClient) OpenRelayByKeyID(context.Context, string) (domonap.Result, error) {
	return domonap.Result{}, nil
}

func (f *fakeKeysClient) EndCallNotify(context.Context, string) (domonap.Result, error) {
	return domonap.Result{}, nil
}

// fakeOpener records presses.
type fakeOpener struct {
	openedKeys   []string
	lastCallHits int
	lastCallRes  relay.OpenRelayResult
}

func (f *fakeOpener) OpenByKeyID(_ context.Context, keyID, _ string) error {
	f.openedKeys = append(f.openedKeys, keyID)
	return nil
}

func (f *fakeOpener) OpenByLastCall(_ context.Context, _, _ string) relay.OpenRelayResult {
	f.lastCallHits++
	return f.lastCallRes
}

func TestProvisionAccount(t *testing.T) {
	client := &fakeKeysClient{page: domonap.KeysPage{Results: []domonap.Key{
		{ID: "key-1", DoorID: "100", Name: "Front", PublicPIN: "1234",
			Raw: map[string]any{"id": "key-1", "doorId": "100"}},
		{ID: "key-2", DoorID: "200", Name: "Garage"}, // no PIN published
		{ID: "key-3", Name: "orphan"},                // no door id
	}}}

	entities := entity.NewStore()
	opener := &fakeOpener{}
	p := New(Deps{Entities: entities, Opener: opener, Logger: logging.Default()})

	acct := &account.Account{EntryID: "entry-1", PhoneDigits: "79991234567", Client: client}
	sensorID, err := p.Account(context.Background(), acct)
	if err != nil {
		t.Fatalf("Account() error = %v", err)
	}
	if sensorID != "sensor.79991234567_last_call_door_id" {
		t.Errorf("last-call sensor = %q, want phone-derived name", sensorID)
	}

	// PIN sensor only for the door that publishes a PIN.
	if st, ok := entities.GetState("sensor.100_door_code"); !ok || st.Value != "1234" {
		t.Errorf("pin sensor = %v, %v; want value 1234", st, ok)
	}
	if _, ok := entities.GetState("sensor.200_door_code"); ok {
		t.Error("pin sensor registered for a door without a PIN")
	}

	// Door buttons for both doors with a door id, none for the orphan key.
	for _, id := range []string{"button.100_open_door", "button.200_open_door"} {
		if _, ok := entities.GetState(id); !ok {
			t.Errorf("door button %s not registered", id)
		}
	}

	if st, ok := entities.GetState(sensorID); !ok || st.Value != "unknown" {
		t.Errorf("last-call sensor initial state = %v, %v; want unknown", st, ok)
	}

	// A door button press opens by key id.
	if err := entities.Press(context.Background(), "button.100_open_door"); err != nil {
		t.Fatalf("Press(door button) error = %v", err)
	}
	if len(opener.openedKeys) != 1 || opener.openedKeys[0] != "key-1" {
		t.Errorf("opened keys = %v, want [key-1]", opener.openedKeys)
	}

	// The last-call button never fails, whatever the workflow outcome.
	opener.lastCallRes = relay.OpenRelayResult{Status: relay.StatusSkipped, Reason: relay.ReasonNoLastCall}
	if err := entities.Press(context.Background(), "button.79991234567_open_relay_by_last_call_door_id"); err != nil {
		t.Fatalf("Press(last-call button) error = %v", err)
	}
	if opener.lastCallHits != 1 {
		t.Errorf("last-call workflow invoked %d times, want 1", opener.lastCallHits)
	}
}

func TestProvisionFailures(t *testing.T) {
	p := New(Deps{Entities: entity.NewStore(), Opener: &fakeOpener{}, Logger: logging.Default()})

	t.Run("nil client", func(t *testing.T) {
		_, err := p.Account(context.Background(), &account.Account{EntryID: "entry-1"})
		if err == nil {
			t.Error("Account() with nil client should fail")
		}
	})

	t.Run("keys fetch fails", func(t *testing.T) {
		acct := &account.Account{
			EntryID: "entry-1",
			Client:  &fakeKeysClient{err: errors.New("unauthorized")},
		}
		if _, err := p.Account(context.Background(), acct); err == nil {
			t.Error("Account() with failing key listing should fail")
		}
	})
}

func TestProvisionFallsBackToEntryID(t *testing.T) {
	entities := entity.NewStore()
	p := New(Deps{Entities: entities, Opener: &fakeOpener{}, Logger: logging.Default()})

	// No phone digits derivable: entity names fall back to the entry id.
	acct := &account.Account{EntryID: "entry-1", Client: &fakeKeysClient{}}
	sensorID, err := p.Account(context.Background(), acct)
	if err != nil {
		t.Fatalf("Account() error = %v", err)
	}
	if sensorID != "sensor.entry-1_last_call_door_id" {
		t.Errorf("last-call sensor = %q, want entry-id fallback", sensorID)
	}
}
