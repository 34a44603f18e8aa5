// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package places searches restaurants through the Google Places text search
// API and summarizes their recent reviews.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jcodagnone/restopicker/spatial"
)

const (
	defaultSearchTextURL = "https://places.googleapis.com/v1/places:searchText"

	// MaxResults caps the number of places requested and returned.
	MaxResults = 10

	unknownName = "Unknown"
)

// fieldMask restricts the response to what a Restaurant needs.
var fieldMask = strings.Join([]string{
	"places.displayName",
	"places.formattedAddress",
	"places.rating",
	"places.googleMapsUri",
	"places.reviews",
}, ",")

// Client talks to the Places API (New).
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

// NewClient creates a places client. A nil httpClient gets a plain client
// with a 10 seconds timeout.
func NewClient(apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    defaultSearchTextURL,
		now:        time.Now,
	}
}

// SetBaseURL points the client at another searchText endpoint.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// Search looks for places matching cuisineText inside the rectangle that
// circumscribes the circle of radiusMeters around center.
//
// Without an API key it returns no restaurants and no error. An error payload
// from the provider is returned as a *ProviderError.
func (c *Client) Search(ctx context.Context, cuisineText string, center spatial.Point, radiusMeters float64) ([]Restaurant, error) {
	if c.apiKey == "" {
		log.Print("places: no api key configured, skipping search")

		return []Restaurant{}, nil
	}

	bounds := spatial.RadiusToBounds(center.Lat, center.Lng, radiusMeters/1000.0)

	body := searchTextRequest{
		TextQuery:      cuisineText,
		MaxResultCount: MaxResults,
	}
	body.LocationRestriction.Rectangle = newRectangle(bounds)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places search request failed: %w", err)
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading places response: %w", err)
	}

	var sr searchTextResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, fmt.Errorf("decoding places response (status %d): %w", resp.StatusCode, err)
	}

	if sr.Error != nil {
		return nil, sr.Error
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	now := c.now()
	restaurants := make([]Restaurant, 0, min(len(sr.Places), MaxResults))

	for _, p := range sr.Places {
		if len(restaurants) == MaxResults {
			break
		}

		restaurants = append(restaurants, toRestaurant(p, now))
	}

	return restaurants, nil
}

func toRestaurant(p place, now time.Time) Restaurant {
	name := unknownName
	if p.DisplayName != nil && p.DisplayName.Text != nil {
		name = *p.DisplayName.Text
	}

	aggregate := CalculateRecentRating(p.Reviews, now)

	return Restaurant{
		Name:              name,
		Address:           p.FormattedAddress,
		Rating:            p.Rating,
		RecentRating:      aggregate.RecentRating,
		RecentReviewCount: aggregate.RecentReviewCount,
		MapsURL:           p.GoogleMapsURI,
	}
}
