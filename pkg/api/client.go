package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmcfarlane/goninja/internal/models"
	"github.com/tmcfarlane/goninja/pkg/identity"
)

// Client defines the hub REST operations the device layer consumes.
type Client interface {
	ListDevices(ctx context.Context) (map[string]models.DeviceDescriptor, error)
	GetDeviceHeartbeat(ctx context.Context, guid string) (models.HeartbeatResponse, error)
	WriteDevice(ctx context.Context, deviceURL string, req models.WriteRequest) error
	DeviceURL(guid string) string
}

// HTTPClient talks to a hub over its REST API, authenticating every request
// with the user access token from the credentials store.
type HTTPClient struct {
	baseURL     string
	credentials identity.CredentialsProvider
	httpClient  *http.Client
	logger      zerolog.Logger
}

// NewHTTPClient creates a hub client for the given endpoint.
func NewHTTPClient(baseURL string, credentials identity.CredentialsProvider, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		credentials: credentials,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// ListDevices fetches the hub's device listing as a guid-to-descriptor map.
func (c *HTTPClient) ListDevices(ctx context.Context) (map[string]models.DeviceDescriptor, error) {
	var resp models.DeviceListResponse
	if err := c.getJSON(ctx, c.baseURL+"/rest/v0/devices", &resp); err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	if resp.ID != 0 {
		return nil, fmt.Errorf("device listing rejected by hub with id %d", resp.ID)
	}
	return resp.Data, nil
}

// GetDeviceHeartbeat fetches the current reading envelope for one device.
// A non-zero envelope id is not an error here; the device layer decides how
// to treat it.
func (c *HTTPClient) GetDeviceHeartbeat(ctx context.Context, guid string) (models.HeartbeatResponse, error) {
	var resp models.HeartbeatResponse
	if err := c.getJSON(ctx, c.DeviceURL(guid)+"/heartbeat", &resp); err != nil {
		return models.HeartbeatResponse{}, fmt.Errorf("failed to fetch heartbeat for %s: %w", guid, err)
	}
	return resp, nil
}

// WriteDevice PUTs an actuator payload to the given device URL. No
// structured response is consumed beyond the status code.
func (c *HTTPClient) WriteDevice(ctx context.Context, deviceURL string, req models.WriteRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode write payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.authenticated(deviceURL), bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("device write failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("device write returned status %d", resp.StatusCode)
	}

	c.logger.Debug().Str("url", deviceURL).Msg("Device write accepted")
	return nil
}

// DeviceURL returns the REST endpoint addressing one device.
func (c *HTTPClient) DeviceURL(guid string) string {
	return c.baseURL + "/rest/v0/device/" + url.PathEscape(guid)
}

func (c *HTTPClient) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.authenticated(rawURL), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("hub returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// authenticated appends the user access token as the hub expects it.
func (c *HTTPClient) authenticated(rawURL string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "user_access_token=" + url.QueryEscape(c.credentials.AccessToken())
}
