// Package geolocate wraps the two public geolocation HTTP APIs the app uses:
// Nominatim for reverse geocoding and ipapi.co for IP-based lookup.
package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultIPAPIURL     = "https://ipapi.co"

	// Label returned when neither service can resolve a location.
	LocationUnavailable = "Location not available"
)

// Location is a resolved "City, Region, Country" label with optional
// coordinates.
type Location struct {
	Label     string
	Latitude  *float64
	Longitude *float64
}

// Client queries the external geolocation services. Base URLs are
// overridable for tests.
type Client struct {
	nominatimURL string
	ipAPIURL     string
	httpClient   *http.Client
}

func NewClient() *Client {
	return &Client{
		nominatimURL: defaultNominatimURL,
		ipAPIURL:     defaultIPAPIURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// NewClientWithBaseURLs is used by tests to point the client at stub servers.
func NewClientWithBaseURLs(nominatimURL, ipAPIURL string) *Client {
	c := NewClient()
	c.nominatimURL = nominatimURL
	c.ipAPIURL = ipAPIURL
	return c
}

type reverseResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		County  string `json:"county"`
		Country string `json:"country"`
	} `json:"address"`
}

// ReverseGeocode formats coordinates as "City, Region, Country" using
// Nominatim, falling back through town/village and county where the primary
// component is missing.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	u := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		c.nominatimURL,
		url.QueryEscape(fmt.Sprintf("%f", lat)),
		url.QueryEscape(fmt.Sprintf("%f", lng)))

	var body reverseResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return "", err
	}

	city := firstNonEmpty(body.Address.City, body.Address.Town, body.Address.Village, "Unknown")
	region := firstNonEmpty(body.Address.State, body.Address.County, "Unknown")
	return fmt.Sprintf("%s, %s, %s", city, region, body.Address.Country), nil
}

type ipAPIResponse struct {
	City        string   `json:"city"`
	Region      string   `json:"region"`
	CountryName string   `json:"country_name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// LookupIP resolves the server's public IP to an approximate location via
// ipapi.co.
func (c *Client) LookupIP(ctx context.Context) (Location, error) {
	var body ipAPIResponse
	if err := c.getJSON(ctx, c.ipAPIURL+"/json/", &body); err != nil {
		return Location{}, err
	}

	loc := Location{
		Label: fmt.Sprintf("%s, %s, %s", body.City, body.Region, body.CountryName),
	}
	if body.Latitude != nil && body.Longitude != nil {
		loc.Latitude = body.Latitude
		loc.Longitude = body.Longitude
	}
	return loc, nil
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "SA-Backend/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geolocation API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding geolocation response: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
