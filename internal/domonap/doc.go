// Package domonap provides the client for the Domonap intercom vendor API.
//
// The vendor exposes four operations: opening a door relay by door id or
// key id, notifying call termination, and listing the keys (doors) an
// account has access to. All responses are JSON objects; an operation
// succeeded if and only if the object contains "ok": true.
//
// That success check is made exactly once, here at the client boundary:
// callers receive a typed Result and never re-inspect raw response maps.
//
// The client performs no retries and applies no timeouts of its own;
// cancellation and deadlines are the caller's responsibility via context.
package domonap
