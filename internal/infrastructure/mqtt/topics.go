package mqtt

import "fmt"

// Topic prefixes per the Gray Logic MQTT specification.
// The intercom bridge lives under the shared graylogic/ hierarchy so the
// platform core and UIs can discover its entities like any other bridge.
const (
	// TopicPrefix is the base for all Gray Logic topics.
	TopicPrefix = "graylogic"

	// protocolName identifies this bridge in the topic hierarchy.
	protocolName = "intercom"
)

// Topics provides builders for intercom MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// EntityState returns the retained-state topic for an entity.
//
// Example: graylogic/state/intercom/sensor.79991234567_last_call_door_id
func (Topics) EntityState(entityID string) string {
	return fmt.Sprintf("%s/state/%s/%s", TopicPrefix, protocolName, entityID)
}

// IncomingCall returns the topic incoming-call events are published on.
//
// The vendor notification relay publishes one JSON object per call with a
// required DoorId field and an optional CallId field.
func (Topics) IncomingCall() string {
	return fmt.Sprintf("%s/event/%s/incoming_call", TopicPrefix, protocolName)
}

// SystemStatus returns the topic for this bridge's online/offline status.
//
// Example: graylogic/system/intercom/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/system/%s/status", TopicPrefix, protocolName)
}
