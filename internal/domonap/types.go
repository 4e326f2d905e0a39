package domonap

// Result is the outcome of a vendor API call.
//
// OK is true if and only if the vendor responded with a JSON object
// containing "ok": true. Raw preserves the full response body for
// diagnostics and for the structured results the orchestrator returns.
type Result struct {
	OK  bool
	Raw map[string]any
}

// Key describes one door key from the vendor's paged keys listing.
//
// A key maps an account to a door plus access metadata. PublicPIN is the
// shared door code; it is empty for doors without a published PIN.
type Key struct {
	ID        string `json:"id"`
	DoorID    string `json:"doorId"`
	Name      string `json:"name"`
	PublicPIN string `json:"domofonPublicPin"`

	// Raw holds the complete key payload as returned by the vendor,
	// exposed as entity attributes on door sensors and buttons.
	Raw map[string]any `json:"-"`
}

// KeysPage is the vendor's paged keys response.
type KeysPage struct {
	Results []Key `json:"results"`
}
