package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MapboxClient implements Geocoder using the Mapbox Geocoding API.
type MapboxClient struct {
	token      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewMapboxClient creates a Mapbox reverse geocoding client.
func NewMapboxClient(token string, timeout time.Duration, logger *slog.Logger) *MapboxClient {
	return &MapboxClient{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/geocoding/v5/mapbox.places",
		logger:  logger,
	}
}

// ReverseGeocode looks up the city and state containing the coordinates.
func (c *MapboxClient) ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error) {
	// Mapbox uses lon,lat order.
	coord := fmt.Sprintf("%.6f,%.6f", lon, lat)
	u := fmt.Sprintf("%s/%s.json", c.baseURL, coord)
	params := url.Values{
		"access_token": {c.token},
		"limit":        {"1"},
		"types":        {"place,locality"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+params.Encode(), nil)
	if err != nil {
		return Place{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Place{}, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var mr response
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return Place{}, fmt.Errorf("decode response: %w", err)
	}

	if len(mr.Features) == 0 {
		c.logger.Debug("reverse geocode found nothing", "lat", lat, "lon", lon)
		return Place{}, nil
	}

	return mr.Features[0].place(), nil
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID        string         `json:"id"` // "<type>.<n>", e.g. "place.8898"
	Text      string         `json:"text"`
	PlaceName string         `json:"place_name"`
	Context   []contextEntry `json:"context"`
}

type contextEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (f feature) place() Place {
	p := Place{FormattedAddress: f.PlaceName}

	if isType(f.ID, "place") {
		p.City = f.Text
	}
	for _, c := range f.Context {
		switch {
		case p.City == "" && isType(c.ID, "place"):
			p.City = c.Text
		case p.State == "" && isType(c.ID, "region"):
			p.State = c.Text
		}
	}
	// A bare locality is the best we have when no place encloses it.
	if p.City == "" && isType(f.ID, "locality") {
		p.City = f.Text
	}
	return p
}

func isType(id, typ string) bool {
	return strings.HasPrefix(id, typ+".")
}
