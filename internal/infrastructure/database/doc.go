// Package database provides the SQLite connection for Gray Logic Intercom.
//
// The database holds the call log: incoming-call records and relay-open
// audit records (see the calllog package). Entity state itself is held in
// memory and published over MQTT; it is not persisted here.
package database
