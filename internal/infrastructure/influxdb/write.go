package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteCallEvent records an accepted incoming-call event.
//
// The write is non-blocking; data is batched and sent asynchronously.
func (c *Client) WriteCallEvent(entryID, doorID string, hasCallID bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"incoming_calls",
		map[string]string{
			"entry_id": entryID,
			"door_id":  doorID,
		},
		map[string]interface{}{
			"count":       1,
			"has_call_id": hasCallID,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteRelayOpen records the outcome of a relay-open attempt.
//
// trigger identifies the entry point (door_id, key_id, last_call,
// button); status is the orchestrator outcome (ok, error, skipped).
func (c *Client) WriteRelayOpen(entryID, trigger, status string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"relay_opens",
		map[string]string{
			"entry_id": entryID,
			"trigger":  trigger,
			"status":   status,
		},
		map[string]interface{}{
			"count": 1,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
