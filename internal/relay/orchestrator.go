package relay

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nerrad567/gray-logic-intercom/internal/account"
	"github.com/nerrad567/gray-logic-intercom/internal/calllog"
	"github.com/nerrad567/gray-logic-intercom/internal/domonap"
	"github.com/nerrad567/gray-logic-intercom/internal/entity"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/logging"
)

// emptySentinels are sensor values meaning "no call recorded yet".
// "unknown"/"unavailable" are platform placeholders, "none"/"None"/""
// come from upstream integrations that publish literal nulls.
var emptySentinels = map[string]bool{
	"unknown":     true,
	"unavailable": true,
	"none":        true,
	"None":        true,
	"":            true,
}

// doorNameKeys are probed in priority order for a human door name.
var doorNameKeys = []string{"DoorName", "door_name", "Address", "Body", "Title"}

// Deps holds the orchestrator's dependencies.
//
// CallLog and Influx are optional; recording is best-effort and never
// affects an action's outcome.
type Deps struct {
	Accounts *account.Registry
	Entities *entity.Store
	CallLog  *calllog.Repository
	Influx   *influxdb.Client
	Logger   *logging.Logger
}

// Orchestrator executes relay-open actions against the vendor API.
type Orchestrator struct {
	accounts *account.Registry
	entities *entity.Store
	callLog  *calllog.Repository
	influx   *influxdb.Client
	log      *logging.Logger
}

// New creates a relay orchestrator.
func New(deps Deps) *Orchestrator {
	return &Orchestrator{
		accounts: deps.Accounts,
		entities: deps.Entities,
		callLog:  deps.CallLog,
		influx:   deps.Influx,
		log:      deps.Logger.With("component", "relay"),
	}
}

// OpenByDoorID opens the relay for a door, selecting the account by
// entry id (or the default account when entryID is empty).
//
// Success is strictly the vendor confirming with ok: true; any other
// response shape is ErrRelayOpenFailed with the raw response attached.
func (o *Orchestrator) OpenByDoorID(ctx context.Context, doorID, entryID string) error {
	return o.openSimple(ctx, entryID, "door_id", doorID, func(ctx context.Context, acct *account.Account) (domonap.Result, error) {
		return acct.Client.OpenRelayByDoorID(ctx, doorID)
	})
}

// OpenByKeyID opens the relay for a key, selecting the account by entry
// id (or the default account when entryID is empty).
func (o *Orchestrator) OpenByKeyID(ctx context.Context, keyID, entryID string) error {
	return o.openSimple(ctx, entryID, "key_id", keyID, func(ctx context.Context, acct *account.Account) (domonap.Result, error) {
		return acct.Client.OpenRelayByKeyID(ctx, keyID)
	})
}

func (o *Orchestrator) openSimple(ctx context.Context, entryID, trigger, target string, open func(context.Context, *account.Account) (domonap.Result, error)) error {
	invocation := uuid.NewString()[:8]
	log := o.log.With("invocation", invocation, "trigger", trigger, "target", target)

	acct, ok := o.accounts.Select(entryID)
	if !ok {
		log.Warn("relay open rejected: no configured account", "requested_entry", entryID)
		o.record(ctx, calllog.RelayOpen{EntryID: entryID, Trigger: trigger, Status: StatusError, Reason: ReasonNoConfigEntries})
		return fmt.Errorf("%w: requested entry %q", ErrNoConfiguredAccount, entryID)
	}
	if acct.Client == nil {
		log.Warn("relay open rejected: api unavailable", "entry_id", acct.EntryID)
		o.record(ctx, calllog.RelayOpen{EntryID: acct.EntryID, Trigger: trigger, Status: StatusError, Reason: ReasonAPIUnavailable})
		return fmt.Errorf("%w: entry %s", ErrAPIUnavailable, acct.EntryID)
	}

	res, err := open(ctx, acct)
	if err != nil {
		log.Error("vendor relay open failed", "entry_id", acct.EntryID, "error", err)
		o.record(ctx, calllog.RelayOpen{EntryID: acct.EntryID, Trigger: trigger, Status: StatusError, Reason: ReasonOpenFailed})
		return fmt.Errorf("%w: %s %s: %w", ErrRelayOpenFailed, trigger, target, err)
	}
	if !res.OK {
		log.Warn("vendor did not confirm relay open", "entry_id", acct.EntryID, "response", res.Raw)
		o.record(ctx, calllog.RelayOpen{EntryID: acct.EntryID, Trigger: trigger, Status: StatusError, Reason: ReasonOpenFailed})
		return fmt.Errorf("%w: %s %s: response %v", ErrRelayOpenFailed, trigger, target, res.Raw)
	}

	log.Info("relay opened", "entry_id", acct.EntryID)
	o.record(ctx, calllog.RelayOpen{EntryID: acct.EntryID, Trigger: trigger, Status: StatusOK})
	return nil
}

// OpenByLastCall opens the relay for the door recorded by the most
// recent incoming call.
//
// entityID names the last-call sensor explicitly; when empty the sensor
// is located via LocateLastCallSensor. The workflow never returns an
// error: every outcome is encoded in the result so callers can branch
// on Status/Reason. A sensor holding an empty sentinel yields
// status=skipped — the routine "nobody has rung" case.
func (o *Orchestrator) OpenByLastCall(ctx context.Context, entityID, entryID string) OpenRelayResult {
	invocation := uuid.NewString()[:8]
	log := o.log.With("invocation", invocation, "trigger", "last_call")

	acct, ok := o.accounts.Select(entryID)
	if !ok {
		log.Warn("last-call open rejected: no configured account", "requested_entry", entryID)
		o.record(ctx, calllog.RelayOpen{EntryID: entryID, Trigger: "last_call", Status: StatusError, Reason: ReasonNoConfigEntries})
		return OpenRelayResult{Status: StatusError, Reason: ReasonNoConfigEntries, ConfigEntryID: entryID}
	}
	result := OpenRelayResult{ConfigEntryID: acct.EntryID}

	if acct.Client == nil {
		log.Warn("last-call open rejected: api unavailable", "entry_id", acct.EntryID)
		result.Status, result.Reason = StatusError, ReasonAPIUnavailable
		o.recordLastCall(ctx, acct.EntryID, result)
		return result
	}

	if entityID == "" {
		entityID = LocateLastCallSensor(o.accounts, o.entities, acct.EntryID)
		if entityID == "" {
			log.Warn("no last-call sensor found", "entry_id", acct.EntryID)
			result.Status, result.Reason = StatusError, ReasonSensorNotFound
			o.recordLastCall(ctx, acct.EntryID, result)
			return result
		}
	}
	result.EntityID = entityID

	st, exists := o.entities.GetState(entityID)
	if !exists {
		log.Warn("last-call sensor has no state", "entity_id", entityID)
		result.Status, result.Reason = StatusError, ReasonSensorNotFound
		o.recordLastCall(ctx, acct.EntryID, result)
		return result
	}

	if emptySentinels[st.Value] {
		log.Debug("no last call recorded", "entity_id", entityID, "state", st.Value)
		result.Status, result.Reason, result.State = StatusSkipped, ReasonNoLastCall, st.Value
		o.recordLastCall(ctx, acct.EntryID, result)
		return result
	}

	result.DoorID = st.Value
	result.CallID = strings.TrimSpace(stringify(st.Attributes["CallId"]))
	result.DoorName = probeDoorName(st.Attributes)

	res, err := acct.Client.OpenRelayByDoorID(ctx, result.DoorID)
	if err != nil {
		log.Error("vendor relay open failed", "entry_id", acct.EntryID, "door_id", result.DoorID, "error", err)
		result.Status, result.Reason = StatusError, ReasonOpenFailed
		result.Response = map[string]any{"error": err.Error()}
		o.recordLastCall(ctx, acct.EntryID, result)
		return result
	}
	result.Response = res.Raw

	if !res.OK {
		log.Warn("vendor did not confirm relay open", "entry_id", acct.EntryID, "door_id", result.DoorID, "response", res.Raw)
		result.Status, result.Reason = StatusError, ReasonOpenFailed
		o.recordLastCall(ctx, acct.EntryID, result)
		return result
	}
	result.Status = StatusOK

	// The open succeeded; a failed end-call notification is captured in
	// the result but never downgrades the primary outcome.
	if result.CallID != "" {
		end, err := acct.Client.EndCallNotify(ctx, result.CallID)
		switch {
		case err != nil:
			log.Warn("end-call notify failed", "call_id", result.CallID, "error", err)
			result.EndCall = map[string]any{"ok": false, "error": "exception"}
		default:
			result.EndCall = end.Raw
		}
	}

	log.Info("relay opened via last call",
		"entry_id", acct.EntryID,
		"door_id", result.DoorID,
		"door_name", result.DoorName,
		"call_id", result.CallID)
	o.recordLastCall(ctx, acct.EntryID, result)
	return result
}

// record persists a relay-open outcome to the call log and telemetry.
func (o *Orchestrator) record(ctx context.Context, ro calllog.RelayOpen) {
	if o.callLog != nil {
		if _, err := o.callLog.RecordRelayOpen(ctx, ro); err != nil {
			o.log.Warn("recording relay open failed", "error", err)
		}
	}
	if o.influx != nil {
		o.influx.WriteRelayOpen(ro.EntryID, ro.Trigger, ro.Status)
	}
}

func (o *Orchestrator) recordLastCall(ctx context.Context, entryID string, result OpenRelayResult) {
	o.record(ctx, calllog.RelayOpen{
		EntryID: entryID,
		Trigger: "last_call",
		Status:  result.Status,
		Reason:  result.Reason,
		DoorID:  result.DoorID,
	})
}

// probeDoorName extracts a human door name from event attributes,
// trying each known key in priority order.
func probeDoorName(attrs map[string]any) string {
	for _, key := range doorNameKeys {
		if name := strings.TrimSpace(stringify(attrs[key])); name != "" {
			return name
		}
	}
	return ""
}

// stringify renders an attribute value as a string. Numbers decoded
// from JSON arrive as float64; integral values drop the ".0" so call
// ids match their string forms.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
