// Package provision builds each account's entity surface at startup.
//
// For every configured account it fetches the vendor's key listing and
// registers: one PIN-code sensor per door that publishes a PIN, one
// open-door button per door, a last-call door-id sensor, and a
// last-call open button. The key listing is a one-shot snapshot; doors
// added at the vendor appear after a restart.
package provision
