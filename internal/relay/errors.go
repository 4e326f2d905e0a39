package relay

import "errors"

// Domain errors for the relay package.
var (
	// ErrNoConfiguredAccount is returned when no account matches the
	// selection criteria (none configured, or the requested entry id is
	// unknown).
	ErrNoConfiguredAccount = errors.New("relay: no configured account")

	// ErrAPIUnavailable is returned when the selected account has no
	// usable vendor API client.
	ErrAPIUnavailable = errors.New("relay: api unavailable")

	// ErrRelayOpenFailed is returned when the vendor call failed or did
	// not confirm the open with ok: true.
	ErrRelayOpenFailed = errors.New("relay: open failed")
)
