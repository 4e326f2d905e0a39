package domonap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/config"
)

// Client is the vendor API surface the rest of the bridge depends on.
//
// Implementations must be safe for concurrent use: multiple relay opens
// may be in flight at once (two button presses, an automation racing a
// manual action) and each issues its own independent call.
type Client interface {
	// OpenRelayByDoorID asks the vendor to open the relay for a door.
	OpenRelayByDoorID(ctx context.Context, doorID string) (Result, error)

	// OpenRelayByKeyID asks the vendor to open the relay for a key.
	OpenRelayByKeyID(ctx context.Context, keyID string) (Result, error)

	// EndCallNotify tells the vendor an incoming call has been handled.
	EndCallNotify(ctx context.Context, callID string) (Result, error)

	// GetPagedKeys lists the keys (doors) available to this account.
	GetPagedKeys(ctx context.Context) (KeysPage, error)
}

// HTTPClient implements Client against the vendor's JSON-over-HTTP API.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient creates a vendor API client for one account.
//
// The http.Client carries no timeout; callers control cancellation
// through context.
func NewHTTPClient(cfg config.VendorAPIConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{},
	}
}

// OpenRelayByDoorID asks the vendor to open the relay for a door.
func (c *HTTPClient) OpenRelayByDoorID(ctx context.Context, doorID string) (Result, error) {
	return c.call(ctx, http.MethodPost, "/v1/doors/"+url.PathEscape(doorID)+"/open")
}

// OpenRelayByKeyID asks the vendor to open the relay for a key.
func (c *HTTPClient) OpenRelayByKeyID(ctx context.Context, keyID string) (Result, error) {
	return c.call(ctx, http.MethodPost, "/v1/keys/"+url.PathEscape(keyID)+"/open")
}

// EndCallNotify tells the vendor an incoming call has been handled.
func (c *HTTPClient) EndCallNotify(ctx context.Context, callID string) (Result, error) {
	return c.call(ctx, http.MethodPost, "/v1/calls/"+url.PathEscape(callID)+"/end")
}

// GetPagedKeys lists the keys (doors) available to this account.
func (c *HTTPClient) GetPagedKeys(ctx context.Context) (KeysPage, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/keys")
	if err != nil {
		return KeysPage{}, err
	}

	// Decode into raw maps first so the complete key payload survives as
	// entity attributes, then lift the known fields.
	var envelope struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return KeysPage{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	page := KeysPage{Results: make([]Key, 0, len(envelope.Results))}
	for _, raw := range envelope.Results {
		page.Results = append(page.Results, Key{
			ID:        jsonString(raw["id"]),
			DoorID:    jsonString(raw["doorId"]),
			Name:      jsonString(raw["name"]),
			PublicPIN: jsonString(raw["domofonPublicPin"]),
			Raw:       raw,
		})
	}

	return page, nil
}

// call performs a request and interprets the response as a Result.
//
// A response that is not a JSON object, or that lacks "ok": true, yields
// Result{OK: false} without an error: the call reached the vendor and the
// vendor said no. Errors are reserved for transport failures.
func (c *HTTPClient) call(ctx context.Context, method, path string) (Result, error) {
	body, err := c.do(ctx, method, path)
	if err != nil {
		return Result{}, err
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Result{
			OK:  false,
			Raw: map[string]any{"body": strings.TrimSpace(string(body))},
		}, nil
	}

	return Result{
		OK:  raw["ok"] == true,
		Raw: raw,
	}, nil
}

// do sends a request and returns the raw response body.
func (c *HTTPClient) do(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrRequestFailed, err)
	}

	return body, nil
}

// jsonString renders a decoded JSON value as a string.
// Numbers are rendered without a trailing ".0" so vendor ids that arrive
// as numbers match their string forms.
func jsonString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
