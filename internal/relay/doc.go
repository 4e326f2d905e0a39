// Package relay orchestrates door relay opens against the vendor API.
//
// Three entry points share a common shape. OpenByDoorID and OpenByKeyID
// are simple pass/fail actions: they select an account, issue exactly
// one vendor call, and return an error when the vendor did not confirm
// the open. OpenByLastCall is the richer workflow behind the "open the
// door that just rang" button: it locates the account's last-call
// sensor, reads the door id the most recent call recorded, opens that
// relay, and conditionally notifies the vendor that the call was
// handled. It never returns an error — every outcome, including the
// routine "nobody has rung yet", is encoded in a structured result so
// automations can branch without error handling.
//
// No retries, no internal locking: concurrent opens for the same door
// are both issued and the vendor service remains the authority on relay
// state.
package relay
