package relay

// Result statuses and reasons for the last-call workflow.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"

	ReasonNoConfigEntries = "no_config_entries"
	ReasonAPIUnavailable  = "api_unavailable"
	ReasonSensorNotFound  = "sensor_not_found"
	ReasonNoLastCall      = "no_last_call"
	ReasonOpenFailed      = "open_failed"
)

// OpenRelayResult is the structured outcome of the last-call workflow.
//
// Status is "ok" if and only if the primary relay open succeeded.
// Reason is set when Status is not "ok". State carries the raw sensor
// value when the workflow was skipped on an empty sentinel. EndCall
// holds the end-call notification outcome when one was attempted; a
// failed notification never changes Status.
type OpenRelayResult struct {
	Status        string         `json:"status"`
	Reason        string         `json:"reason,omitempty"`
	DoorID        string         `json:"door_id,omitempty"`
	DoorName      string         `json:"door_name,omitempty"`
	CallID        string         `json:"call_id,omitempty"`
	EndCall       map[string]any `json:"end_call_result,omitempty"`
	EntityID      string         `json:"entity_id,omitempty"`
	ConfigEntryID string         `json:"config_entry_id,omitempty"`
	State         string         `json:"state,omitempty"`
	Response      map[string]any `json:"response,omitempty"`
}
