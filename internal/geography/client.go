package geography

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	errors "github.com/frahmantamala/office-management/internal"
)

// ClientAPI exposes the country/state/city catalog and location checks.
type ClientAPI interface {
	GetCountries(ctx context.Context) ([]string, error)
	GetStates(ctx context.Context, country string) ([]string, error)
	GetCities(ctx context.Context, country, state string) ([]string, error)
	ValidateLocation(ctx context.Context, country, state, city string) bool
}

// Client talks to the countriesnow geography API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// countryEntry is one element of the upstream countries payload. Each
// country also carries its city list, which this endpoint ignores.
type countryEntry struct {
	Country string   `json:"country"`
	Cities  []string `json:"cities"`
}

type countriesPayload struct {
	Error bool           `json:"error"`
	Msg   string         `json:"msg"`
	Data  []countryEntry `json:"data"`
}

type statesPayload struct {
	Error bool   `json:"error"`
	Msg   string `json:"msg"`
	Data  struct {
		Name   string `json:"name"`
		States []struct {
			Name      string `json:"name"`
			StateCode string `json:"state_code"`
		} `json:"states"`
	} `json:"data"`
}

type citiesPayload struct {
	Error bool     `json:"error"`
	Msg   string   `json:"msg"`
	Data  []string `json:"data"`
}

// GetCountries lists all country names known upstream.
func (c *Client) GetCountries(ctx context.Context) ([]string, error) {
	var payload countriesPayload
	if err := c.get(ctx, "/countries", &payload); err != nil {
		return nil, err
	}
	if payload.Error {
		return nil, errors.NewExternalError("Failed to fetch countries", fmt.Errorf("upstream error: %s", payload.Msg))
	}

	countries := make([]string, 0, len(payload.Data))
	for _, entry := range payload.Data {
		countries = append(countries, entry.Country)
	}
	return countries, nil
}

// GetStates lists the state names of a country.
func (c *Client) GetStates(ctx context.Context, country string) ([]string, error) {
	body := map[string]string{"country": country}

	var payload statesPayload
	if err := c.post(ctx, "/countries/states", body, &payload); err != nil {
		return nil, err
	}
	if payload.Error {
		return nil, errors.NewExternalError("Failed to fetch states", fmt.Errorf("upstream error: %s", payload.Msg))
	}

	states := make([]string, 0, len(payload.Data.States))
	for _, state := range payload.Data.States {
		states = append(states, state.Name)
	}
	return states, nil
}

// GetCities lists the city names of a state.
func (c *Client) GetCities(ctx context.Context, country, state string) ([]string, error) {
	body := map[string]string{"country": country, "state": state}

	var payload citiesPayload
	if err := c.post(ctx, "/countries/state/cities", body, &payload); err != nil {
		return nil, err
	}
	if payload.Error {
		return nil, errors.NewExternalError("Failed to fetch cities", fmt.Errorf("upstream error: %s", payload.Msg))
	}

	return payload.Data, nil
}

// ValidateLocation checks that country, state and city form a known
// combination. Upstream failures return true so employee writes never
// block on the geography API being down.
func (c *Client) ValidateLocation(ctx context.Context, country, state, city string) bool {
	countries, err := c.GetCountries(ctx)
	if err != nil {
		c.logger.Warn("location validation skipped, countries lookup failed", "error", err)
		return true
	}
	if !contains(countries, country) {
		return false
	}

	states, err := c.GetStates(ctx, country)
	if err != nil {
		c.logger.Warn("location validation skipped, states lookup failed", "country", country, "error", err)
		return true
	}
	if !contains(states, state) {
		return false
	}

	cities, err := c.GetCities(ctx, country, state)
	if err != nil {
		c.logger.Warn("location validation skipped, cities lookup failed", "country", country, "state", state, "error", err)
		return true
	}
	return contains(cities, city)
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.NewExternalError("failed to build geography request", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return errors.NewExternalError("failed to marshal geography request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return errors.NewExternalError("failed to build geography request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewExternalError("geography request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.NewExternalError("geography request failed", fmt.Errorf("upstream returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalError("failed to decode geography response", err)
	}

	return nil
}
