package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Service is the itinerary persistence contract consumed by the sync
// controller. Client implements it over HTTP; tests substitute fakes.
type Service interface {
	CreateItinerary(ctx context.Context, payload Itinerary) (Itinerary, error)
	UpdateItinerary(ctx context.Context, id int64, payload Itinerary) (Itinerary, error)
	GetItineraryDetail(ctx context.Context, id int64) (Itinerary, error)
}

// Client talks to the itinerary service. Call duration is bounded by the
// caller's context; the client itself sets no timeout.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the given base URL. token may be empty for
// anonymous access during local development.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

func (c *Client) CreateItinerary(ctx context.Context, payload Itinerary) (Itinerary, error) {
	return c.send(ctx, http.MethodPost, "/itineraries", &payload)
}

func (c *Client) UpdateItinerary(ctx context.Context, id int64, payload Itinerary) (Itinerary, error) {
	return c.send(ctx, http.MethodPut, "/itineraries/"+strconv.FormatInt(id, 10), &payload)
}

func (c *Client) GetItineraryDetail(ctx context.Context, id int64) (Itinerary, error) {
	return c.send(ctx, http.MethodGet, "/itineraries/"+strconv.FormatInt(id, 10), nil)
}

func (c *Client) send(ctx context.Context, method, path string, payload *Itinerary) (Itinerary, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Itinerary{}, fmt.Errorf("failed to encode itinerary payload: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return Itinerary{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Itinerary{}, fmt.Errorf("itinerary service unreachable: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return Itinerary{}, fmt.Errorf("itinerary service returned status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out Itinerary
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Itinerary{}, fmt.Errorf("failed to decode itinerary response: %w", err)
	}
	return out, nil
}
