// Package calllog persists intercom activity to SQLite: accepted
// incoming-call events and the outcome of every relay-open attempt.
//
// The log is an operational record, not a source of truth — the
// last-call sensors carry the live state. It exists so an operator can
// answer "who rang, when, and did the door open" after the fact, and so
// the HTTP API can serve recent history.
package calllog
