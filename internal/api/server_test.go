package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nerrad567/gray-logic-intercom/internal/account"
	"github.com/nerrad567/gray-logic-intercom/internal/entity"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-intercom/internal/relay"
)

// fakeRelay is a RelayService double with scripted outcomes.
type fakeRelay struct {
	doorErr     error
	keyErr      error
	lastCallRes relay.OpenRelayResult

	openedDoors []string
	openedKeys  []string
}

func (f *fakeRelay) OpenByDoorID(_ context.Context, doorID, _ string) error {
	f.openedDoors = append(f.openedDoors, doorID)
	return f.doorErr
}

func (f *fakeRelay) OpenByKeyID(_ context.Context, keyID, _ string) error {
	f.openedKeys = append(f.openedKeys, keyID)
	return f.keyErr
}

func (f *fakeRelay) OpenByLastCall(context.Context, string, string) relay.OpenRelayResult {
	return f.lastCallRes
}

// testServer creates a Server wired to in-memory fakes.
func testServer(t *testing.T, svc RelayService) (*Server, *entity.Store) {
	t.Helper()

	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	entities := entity.NewStore()
	accounts := account.NewRegistry()
	if err := accounts.Add(&account.Account{EntryID: "entry-1", Title: "flat 1", PhoneDigits: "79991234567"}); err != nil {
		t.Fatalf("registering account: %v", err)
	}

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		WS: config.WebSocketConfig{
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret:         "test-secret-key-at-least-32-characters-long",
				AccessTokenTTL: 15,
			},
			Admin: config.AdminConfig{
				Username: "admin",
				Password: "test-password",
			},
		},
		Logger:   log,
		Entities: entities,
		Accounts: accounts,
		Relay:    svc,
		Version:  "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	srv.hub = NewHub(srv.wsCfg, log)
	go srv.hub.Run(context.Background())

	return srv, entities
}

// login obtains a JWT through the real login handler.
func login(t *testing.T, router http.Handler) string {
	t.Helper()

	body := bytes.NewBufferString(`{"username": "admin", "password": "test-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	return resp.AccessToken
}

func authedRequest(method, path, token string, body []byte) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHealthOpen(t *testing.T) {
	srv, _ := testServer(t, &fakeRelay{})
	router := srv.buildRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200 without auth", rec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv, _ := testServer(t, &fakeRelay{})
	router := srv.buildRouter()

	body := bytes.NewBufferString(`{"username": "admin", "password": "wrong"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("login status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv, _ := testServer(t, &fakeRelay{})
	router := srv.buildRouter()

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/entities/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/entities/", "not-a-jwt", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token := login(t, router)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/entities/", token, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
		}
	})
}

func TestOpenByDoorID(t *testing.T) {
	svc := &fakeRelay{}
	srv, _ := testServer(t, svc)
	router := srv.buildRouter()
	token := login(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/relay/open-by-door-id", token,
		[]byte(`{"door_id": "100"}`)))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204, body = %s", rec.Code, rec.Body.String())
	}
	if len(svc.openedDoors) != 1 || svc.openedDoors[0] != "100" {
		t.Errorf("opened doors = %v, want [100]", svc.openedDoors)
	}
}

func TestOpenByDoorIDErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no account", relay.ErrNoConfiguredAccount, http.StatusServiceUnavailable},
		{"api unavailable", relay.ErrAPIUnavailable, http.StatusServiceUnavailable},
		{"vendor refused", relay.ErrRelayOpenFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := testServer(t, &fakeRelay{doorErr: tt.err})
			router := srv.buildRouter()
			token := login(t, router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/relay/open-by-door-id", token,
				[]byte(`{"door_id": "100"}`)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestOpenByDoorIDRequiresDoorID(t *testing.T) {
	srv, _ := testServer(t, &fakeRelay{})
	router := srv.buildRouter()
	token := login(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/relay/open-by-door-id", token,
		[]byte(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOpenByLastCallAlways200(t *testing.T) {
	svc := &fakeRelay{lastCallRes: relay.OpenRelayResult{
		Status: relay.StatusSkipped,
		Reason: relay.ReasonNoLastCall,
		State:  "unknown",
	}}
	srv, _ := testServer(t, svc)
	router := srv.buildRouter()
	token := login(t, router)

	// Even a skipped workflow is a 200: the outcome lives in the body.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/relay/open-by-last-call", token, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res relay.OpenRelayResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if res.Status != relay.StatusSkipped || res.Reason != relay.ReasonNoLastCall {
		t.Errorf("result = %s/%s, want skipped/no_last_call", res.Status, res.Reason)
	}
}

func TestEntityEndpoints(t *testing.T) {
	srv, entities := testServer(t, &fakeRelay{})
	entities.RegisterSensor("sensor.100_door_code", "1234", nil)
	pressed := false
	entities.RegisterButton("button.100_open_door", nil, func(context.Context) error {
		pressed = true
		return nil
	})

	router := srv.buildRouter()
	token := login(t, router)

	t.Run("get sensor", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/entities/sensor.100_door_code", token, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var st entity.State
		if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
			t.Fatalf("decoding state: %v", err)
		}
		if st.Value != "1234" {
			t.Errorf("value = %q, want 1234", st.Value)
		}
	})

	t.Run("get missing entity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/entities/sensor.nope", token, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("press button", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/buttons/button.100_open_door/press", token, nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if !pressed {
			t.Error("press handler not invoked")
		}
	})

	t.Run("press a sensor", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/buttons/sensor.100_door_code/press", token, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestListAccountsHidesTokens(t *testing.T) {
	srv, _ := testServer(t, &fakeRelay{})
	router := srv.buildRouter()
	token := login(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/accounts", token, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Accounts []map[string]any `json:"accounts"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding accounts: %v", err)
	}
	if resp.Count != 1 || resp.Accounts[0]["entry_id"] != "entry-1" {
		t.Errorf("accounts = %+v, want the configured entry", resp.Accounts)
	}
	if _, leaked := resp.Accounts[0]["token"]; leaked {
		t.Error("vendor token leaked through the accounts endpoint")
	}
}
