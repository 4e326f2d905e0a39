package account

import "github.com/nerrad567/gray-logic-intercom/internal/domonap"

// Account is one configured integration entry: one intercom service login.
type Account struct {
	// EntryID is the stable identifier for this account, unique across
	// the process. Taken from accounts[].id in configuration.
	EntryID string

	// Title is the human-readable account label, e.g. "+7 999 123-45-67".
	Title string

	// PhoneDigits is the digits-only phone identity derived from
	// configuration. Empty when no identity could be derived; entity
	// names then fall back to the raw entry id.
	PhoneDigits string

	// Client is the vendor API client for this account. May be nil when
	// the client could not be constructed; actions against such an
	// account fail with an api-unavailable error.
	Client domonap.Client
}

// ObjectID returns the identifier used to build this account's entity
// names: the phone digits when available, otherwise the entry id.
func (a *Account) ObjectID() string {
	if a.PhoneDigits != "" {
		return a.PhoneDigits
	}
	return a.EntryID
}
