package api

import (
	"net/http"
	"strconv"
)

// defaultHistoryLimit caps call-log listings when no limit is given.
const defaultHistoryLimit = 50

// handleListCalls returns recent incoming calls, newest first.
func (s *Server) handleListCalls(w http.ResponseWriter, r *http.Request) {
	if s.callLog == nil {
		writeUnavailable(w, "call log not configured")
		return
	}

	calls, err := s.callLog.RecentCalls(r.Context(), queryLimit(r))
	if err != nil {
		s.logger.Error("listing calls failed", "error", err)
		writeInternalError(w, "failed to list calls")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"calls": calls,
		"count": len(calls),
	})
}

// handleListRelayOpens returns recent relay-open outcomes, newest first.
func (s *Server) handleListRelayOpens(w http.ResponseWriter, r *http.Request) {
	if s.callLog == nil {
		writeUnavailable(w, "call log not configured")
		return
	}

	opens, err := s.callLog.RecentRelayOpens(r.Context(), queryLimit(r))
	if err != nil {
		s.logger.Error("listing relay opens failed", "error", err)
		writeInternalError(w, "failed to list relay opens")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"relay_opens": opens,
		"count":       len(opens),
	})
}

// queryLimit parses the limit query parameter, with a sane default.
func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultHistoryLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultHistoryLimit
	}
	return limit
}
