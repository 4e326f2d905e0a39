package account

import "sync"

// Registry holds the configured accounts in registration order.
//
// It replaces the ambient per-process account map the integration would
// otherwise reach into: the registry is constructed once at startup and
// passed explicitly to every component that selects accounts.
//
// All public methods are thread-safe.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]*Account
	order []string // entry ids in registration order
}

// NewRegistry creates an empty account registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]*Account),
	}
}

// Add registers an account. Entry ids must be unique; registration order
// is preserved and determines the default selection.
func (r *Registry) Add(acct *Account) error {
	if acct == nil || acct.EntryID == "" {
		return ErrInvalidEntry
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[acct.EntryID]; exists {
		return ErrDuplicateEntry
	}

	r.byID[acct.EntryID] = acct
	r.order = append(r.order, acct.EntryID)
	return nil
}

// Get returns the account with the given entry id.
func (r *Registry) Get(entryID string) (*Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.byID[entryID]
	return acct, ok
}

// Select picks the account an action should target.
//
// Policy:
//   - no accounts registered: nothing is selected;
//   - requested non-empty: that exact account or nothing — a missing
//     requested entry is never silently substituted with another account;
//   - requested empty: the first registered account.
//
// The first-registered default is a convenience for single-account
// installs; with several accounts callers should pass an explicit entry id.
func (r *Registry) Select(requested string) (*Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil, false
	}

	if requested != "" {
		acct, ok := r.byID[requested]
		return acct, ok
	}

	return r.byID[r.order[0]], true
}

// List returns all accounts in registration order.
func (r *Registry) List() []*Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*Account, 0, len(r.order))
	for _, id := range r.order {
		accounts = append(accounts, r.byID[id])
	}
	return accounts
}

// Len returns the number of registered accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
