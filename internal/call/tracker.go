package call

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nerrad567/gray-logic-intercom/internal/calllog"
	"github.com/nerrad567/gray-logic-intercom/internal/entity"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/logging"
)

// doorNameKeys are probed in priority order for a human door name when
// recording a call.
var doorNameKeys = []string{"DoorName", "door_name", "Address", "Body", "Title"}

// Tracker maintains one account's last-call sensor.
type Tracker struct {
	entryID  string
	entityID string
	entities *entity.Store
	callLog  *calllog.Repository
	influx   *influxdb.Client
	log      *logging.Logger
}

// TrackerDeps holds a tracker's dependencies. CallLog and Influx are
// optional; recording is best-effort.
type TrackerDeps struct {
	EntryID  string
	EntityID string
	Entities *entity.Store
	CallLog  *calllog.Repository
	Influx   *influxdb.Client
	Logger   *logging.Logger
}

// NewTracker creates a tracker that projects incoming calls onto the
// given last-call sensor.
func NewTracker(deps TrackerDeps) *Tracker {
	return &Tracker{
		entryID:  deps.EntryID,
		entityID: deps.EntityID,
		entities: deps.Entities,
		callLog:  deps.CallLog,
		influx:   deps.Influx,
		log:      deps.Logger.With("component", "call-tracker", "entry_id", deps.EntryID),
	}
}

// EntityID returns the last-call sensor this tracker maintains.
func (t *Tracker) EntityID() string {
	return t.entityID
}

// HandleEvent processes one incoming-call event payload.
//
// An event without a DoorId is ignored: no state change, no error. A
// valid event replaces the sensor value with the stringified door id
// and the attribute set with the whole payload plus a "ts" timestamp
// (RFC 3339, UTC). The method never fails; recording problems are
// logged and swallowed.
func (t *Tracker) HandleEvent(ctx context.Context, payload map[string]any) {
	doorID := strings.TrimSpace(stringify(payload["DoorId"]))
	if doorID == "" {
		t.log.Debug("ignoring incoming-call event without door id")
		return
	}

	attrs := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		attrs[k] = v
	}
	attrs["ts"] = time.Now().UTC().Format(time.RFC3339)

	if err := t.entities.SetState(t.entityID, doorID, attrs); err != nil {
		t.log.Error("updating last-call sensor failed", "entity_id", t.entityID, "error", err)
		return
	}

	callID := strings.TrimSpace(stringify(payload["CallId"]))
	t.log.Info("incoming call", "door_id", doorID, "call_id", callID)

	if t.callLog != nil {
		if _, err := t.callLog.RecordCall(ctx, calllog.Call{
			EntryID:  t.entryID,
			DoorID:   doorID,
			CallID:   callID,
			DoorName: probeDoorName(payload),
		}); err != nil {
			t.log.Warn("recording call failed", "error", err)
		}
	}
	if t.influx != nil {
		t.influx.WriteCallEvent(t.entryID, doorID, callID != "")
	}
}

// probeDoorName extracts a human door name from an event payload.
func probeDoorName(payload map[string]any) string {
	for _, key := range doorNameKeys {
		if name := strings.TrimSpace(stringify(payload[key])); name != "" {
			return name
		}
	}
	return ""
}

// stringify renders a decoded JSON value as a string. Integral float64
// values drop the ".0" so numeric door and call ids match their string
// forms.
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
