package provision

import (
	"context"
	"fmt"

	"github.com/nerrad567/gray-logic-intercom/internal/account"
	"github.com/nerrad567/gray-logic-intercom/internal/entity"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-intercom/internal/relay"
)

// Opener is the relay surface button presses need; satisfied by
// *relay.Orchestrator.
type Opener interface {
	OpenByKeyID(ctx context.Context, keyID, entryID string) error
	OpenByLastCall(ctx context.Context, entityID, entryID string) relay.OpenRelayResult
}

// Deps holds the provisioner's dependencies.
type Deps struct {
	Entities *entity.Store
	Opener   Opener
	Logger   *logging.Logger
}

// Provisioner registers an account's entities in the store.
type Provisioner struct {
	entities *entity.Store
	opener   Opener
	log      *logging.Logger
}

// New creates a provisioner.
func New(deps Deps) *Provisioner {
	return &Provisioner{
		entities: deps.Entities,
		opener:   deps.Opener,
		log:      deps.Logger.With("component", "provision"),
	}
}

// Account registers all entities for one account and returns the entity
// id of its last-call sensor.
//
// Door entities come from the vendor's key listing; a failed listing
// fails provisioning since the account would have no door surface at
// all. Individual oddities — a key without a door id, a door without a
// published PIN — are skipped with a log line, not errors.
func (p *Provisioner) Account(ctx context.Context, acct *account.Account) (string, error) {
	log := p.log.With("entry_id", acct.EntryID)

	if acct.Client == nil {
		return "", fmt.Errorf("provisioning %s: no vendor client", acct.EntryID)
	}

	page, err := acct.Client.GetPagedKeys(ctx)
	if err != nil {
		return "", fmt.Errorf("provisioning %s: fetching keys: %w", acct.EntryID, err)
	}

	for _, key := range page.Results {
		if key.DoorID == "" {
			log.Warn("skipping key without door id", "key_id", key.ID)
			continue
		}

		if key.PublicPIN != "" {
			pinID := "sensor." + key.DoorID + "_door_code"
			if err := p.entities.RegisterSensor(pinID, key.PublicPIN, key.Raw); err != nil {
				log.Warn("registering pin sensor failed", "entity_id", pinID, "error", err)
			}
		} else {
			log.Debug("door has no published pin", "door_id", key.DoorID)
		}

		buttonID := "button." + key.DoorID + "_open_door"
		keyID := key.ID
		entryID := acct.EntryID
		if err := p.entities.RegisterButton(buttonID, key.Raw, func(ctx context.Context) error {
			return p.opener.OpenByKeyID(ctx, keyID, entryID)
		}); err != nil {
			log.Warn("registering door button failed", "entity_id", buttonID, "error", err)
		}
	}

	object := acct.ObjectID()

	sensorID := "sensor." + object + "_last_call_door_id"
	if err := p.entities.RegisterSensor(sensorID, "unknown", nil); err != nil {
		return "", fmt.Errorf("provisioning %s: registering last-call sensor: %w", acct.EntryID, err)
	}

	lastCallButton := "button." + object + "_open_relay_by_last_call_door_id"
	entryID := acct.EntryID
	if err := p.entities.RegisterButton(lastCallButton, nil, func(ctx context.Context) error {
		// The workflow reports its outcome in the result; a press never
		// fails, mirroring the structured-result contract.
		res := p.opener.OpenByLastCall(ctx, "", entryID)
		if res.Status != relay.StatusOK {
			log.Warn("last-call button outcome", "status", res.Status, "reason", res.Reason)
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("provisioning %s: registering last-call button: %w", acct.EntryID, err)
	}

	log.Info("account provisioned",
		"doors", len(page.Results),
		"last_call_sensor", sensorID)
	return sensorID, nil
}
