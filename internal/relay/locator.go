package relay

import (
	"strings"

	"github.com/nerrad567/gray-logic-intercom/internal/account"
	"github.com/nerrad567/gray-logic-intercom/internal/entity"
)

// lastCallSuffix identifies a last-call door-id sensor.
const lastCallSuffix = "_last_call_door_id"

// LocateLastCallSensor finds the last-call sensor for an account.
//
// Resolution order:
//  1. the canonical name built from the account's phone digits,
//     sensor.<phone_digits>_last_call_door_id, if that entity exists;
//  2. the legacy name built from the entry id,
//     sensor.intercom_<entry_id>_last_call_door_id, kept for installs
//     provisioned before phone-derived naming;
//  3. the first registered sensor whose id ends with the last-call
//     suffix. Registration order is the only tie-break with several
//     accounts; callers wanting a specific account should pass its
//     entry id.
//
// Returns "" when nothing matches; a missing sensor is not an error at
// this layer.
func LocateLastCallSensor(accounts *account.Registry, entities *entity.Store, entryID string) string {
	if entryID != "" {
		if acct, ok := accounts.Get(entryID); ok && acct.PhoneDigits != "" {
			id := "sensor." + acct.PhoneDigits + lastCallSuffix
			if _, exists := entities.GetState(id); exists {
				return id
			}
		}

		legacy := "sensor.intercom_" + entryID + lastCallSuffix
		if _, exists := entities.GetState(legacy); exists {
			return legacy
		}
	}

	for _, st := range entities.Sensors() {
		if strings.HasSuffix(st.EntityID, lastCallSuffix) {
			return st.EntityID
		}
	}

	return ""
}
