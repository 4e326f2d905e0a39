package account

import "strings"

// PhoneDigits derives the digits-only phone identity for an account.
//
// The configured phone number is preferred; when it is empty (or contains
// no digits at all) the title is parsed instead, so entries configured as
// just "+7 9991234567" still get a stable identity. An empty return value
// means no identity could be derived, which is a valid outcome: naming
// then falls back to the entry id.
func PhoneDigits(phoneNumber, title string) string {
	if strings.TrimSpace(phoneNumber) != "" {
		if digits := keepDigits(phoneNumber); digits != "" {
			return digits
		}
	}

	return keepDigits(title)
}

// keepDigits strips every non-digit character from s.
func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
