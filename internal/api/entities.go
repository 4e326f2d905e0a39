package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-intercom/internal/entity"
)

// handleListEntities returns all registered entities in registration order.
func (s *Server) handleListEntities(w http.ResponseWriter, _ *http.Request) {
	states := s.entities.All()
	writeJSON(w, http.StatusOK, map[string]any{
		"entities": states,
		"count":    len(states),
	})
}

// handleGetEntity returns one entity's current state.
func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, ok := s.entities.GetState(id)
	if !ok {
		writeNotFound(w, "entity not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handlePressButton invokes a button entity's press handler.
func (s *Server) handlePressButton(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.entities.Press(r.Context(), id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, entity.ErrNotFound):
		writeNotFound(w, "button not found: "+id)
	case errors.Is(err, entity.ErrNotAButton):
		writeBadRequest(w, "not a button: "+id)
	default:
		// Door and key buttons surface relay failures directly.
		s.writeRelayOutcome(w, err)
	}
}

// handleListAccounts returns the configured accounts. Vendor tokens
// never leave the process; only identity fields are exposed.
func (s *Server) handleListAccounts(w http.ResponseWriter, _ *http.Request) {
	type accountView struct {
		EntryID     string `json:"entry_id"`
		Title       string `json:"title,omitempty"`
		PhoneDigits string `json:"phone_digits,omitempty"`
		HasClient   bool   `json:"has_client"`
	}

	accounts := s.accounts.List()
	views := make([]accountView, 0, len(accounts))
	for _, acct := range accounts {
		views = append(views, accountView{
			EntryID:     acct.EntryID,
			Title:       acct.Title,
			PhoneDigits: acct.PhoneDigits,
			HasClient:   acct.Client != nil,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accounts": views,
		"count":    len(views),
	})
}
