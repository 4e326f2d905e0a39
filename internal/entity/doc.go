// Package entity holds the bridge's entity surface: the sensors and
// buttons this service exposes to the Gray Logic platform.
//
// Entities live in an in-memory Store. Sensor state changes go through a
// single writer (the owning component) and are fanned out to registered
// observers — the MQTT retained-state publisher and the WebSocket hub —
// synchronously on the writing goroutine. The store enumerates entities
// in registration order, which makes suffix-based discovery scans
// deterministic.
//
// Entity ids follow the platform convention "<kind>.<object_id>", e.g.
// sensor.79991234567_last_call_door_id or button.100_open_door.
package entity
