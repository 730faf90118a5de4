package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

// Client is a lightweight helper around http.Client for the hosted model
// database, so builds can pull a dataset newer than the embedded one.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: trimRightSlash(baseURL), HTTP: &http.Client{Timeout: 10 * time.Second}}
}

func trimRightSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

type modelRecord struct {
	Model          string `json:"model"`
	BluetoothModel string `json:"bluetoothModel,omitempty"`
	CPUGeneration  string `json:"cpuGeneration"`
}

func (m modelRecord) profile() (oclp.StaticProfile, error) {
	tier, err := parseTier(m.BluetoothModel)
	if err != nil {
		return oclp.StaticProfile{}, err
	}
	gen, err := parseCPUGeneration(m.CPUGeneration)
	if err != nil {
		return oclp.StaticProfile{}, err
	}
	return oclp.StaticProfile{BluetoothTier: tier, CPUGeneration: gen}, nil
}

// ProfileForModel fetches a single model's static profile.
func (c *Client) ProfileForModel(ctx context.Context, model string) (oclp.StaticProfile, error) {
	var raw modelRecord
	if err := c.getJSON(ctx, "/api/v1/models/"+url.PathEscape(model), &raw); err != nil {
		return oclp.StaticProfile{}, err
	}
	p, err := raw.profile()
	if err != nil {
		return oclp.StaticProfile{}, fmt.Errorf("profiles: model %s: %w", model, err)
	}
	return p, nil
}

// FetchTable downloads the complete model table.
func (c *Client) FetchTable(ctx context.Context) (*Table, error) {
	var list []modelRecord
	if err := c.getJSON(ctx, "/api/v1/models", &list); err != nil {
		return nil, err
	}
	entries := make(map[string]oclp.StaticProfile, len(list))
	for _, rec := range list {
		p, err := rec.profile()
		if err != nil {
			return nil, fmt.Errorf("profiles: model %s: %w", rec.Model, err)
		}
		entries[rec.Model] = p
	}
	return &Table{entries: entries}, nil
}

// getJSON performs an HTTP GET and decodes JSON into out; HTTP status codes
// are mapped to the package sentinel errors where feasible.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusOK:
		if out != nil {
			if err := json.Unmarshal(b, out); err != nil {
				return fmt.Errorf("decode: %w", err)
			}
		}
		return nil
	case http.StatusNotFound:
		return oclp.ErrProfileNotFound
	case http.StatusForbidden:
		return oclp.ErrAccessDenied
	default:
		if resp.StatusCode >= 500 {
			return oclp.ErrBackendUnavailable
		}
		return errors.New(resp.Status)
	}
}
