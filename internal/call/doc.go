// Package call tracks incoming intercom calls.
//
// The vendor notification relay publishes one JSON object per incoming
// call on the shared incoming-call event topic. A Dispatcher owns the
// single broker subscription and fans each decoded event out to one
// Tracker per account. A Tracker projects the event onto its account's
// last-call sensor: the sensor value becomes the door id, the
// attributes become the full event payload plus a processing timestamp,
// replaced wholesale on every call. Only the most recent call is
// retained; history lives in the call log, not here.
//
// Events without a door id are ignored entirely — no state change, no
// error. Event handling performs no I/O beyond best-effort recording
// and never fails the dispatch.
package call
