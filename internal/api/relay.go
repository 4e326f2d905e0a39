package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/gray-logic-intercom/internal/relay"
)

// openByDoorRequest is the body for POST /relay/open-by-door-id.
type openByDoorRequest struct {
	DoorID        string `json:"door_id"`
	ConfigEntryID string `json:"config_entry_id,omitempty"`
}

// openByKeyRequest is the body for POST /relay/open-by-key-id.
type openByKeyRequest struct {
	KeyID         string `json:"key_id"`
	ConfigEntryID string `json:"config_entry_id,omitempty"`
}

// openByLastCallRequest is the body for POST /relay/open-by-last-call.
// Both fields are optional: the default account and located sensor apply.
type openByLastCallRequest struct {
	EntityID      string `json:"entity_id,omitempty"`
	ConfigEntryID string `json:"config_entry_id,omitempty"`
}

// handleOpenByDoorID opens the relay for a door. 204 on success; the
// failure mode maps to the status code so callers can tell "bridge
// misconfigured" from "vendor refused".
func (s *Server) handleOpenByDoorID(w http.ResponseWriter, r *http.Request) {
	var req openByDoorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.DoorID == "" {
		writeBadRequest(w, "door_id is required")
		return
	}

	err := s.relay.OpenByDoorID(r.Context(), req.DoorID, req.ConfigEntryID)
	s.writeRelayOutcome(w, err)
}

// handleOpenByKeyID opens the relay for a key.
func (s *Server) handleOpenByKeyID(w http.ResponseWriter, r *http.Request) {
	var req openByKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.KeyID == "" {
		writeBadRequest(w, "key_id is required")
		return
	}

	err := s.relay.OpenByKeyID(r.Context(), req.KeyID, req.ConfigEntryID)
	s.writeRelayOutcome(w, err)
}

// handleOpenByLastCall runs the last-call workflow and always returns
// 200 with the structured result; callers branch on its status field.
func (s *Server) handleOpenByLastCall(w http.ResponseWriter, r *http.Request) {
	var req openByLastCallRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid JSON body")
			return
		}
	}

	result := s.relay.OpenByLastCall(r.Context(), req.EntityID, req.ConfigEntryID)
	writeJSON(w, http.StatusOK, result)
}

// writeRelayOutcome maps a simple relay action outcome to HTTP.
func (s *Server) writeRelayOutcome(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, relay.ErrNoConfiguredAccount), errors.Is(err, relay.ErrAPIUnavailable):
		writeUnavailable(w, err.Error())
	case errors.Is(err, relay.ErrRelayOpenFailed):
		writeBadGateway(w, err.Error())
	default:
		writeInternalError(w, err.Error())
	}
}
