// Package account manages the configured intercom accounts.
//
// Each account corresponds to one vendor login (commonly one phone
// number) and carries its own vendor API client. The Registry keeps
// accounts in explicit registration order so that "the first configured
// account" — the default target for single-account installs — is a
// deterministic, documented policy rather than accidental map iteration.
package account
