// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jcodagnone/restopicker/spatial"
)

const defaultGoogleMapsURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleMapsGeocoder uses Google Maps Geocoding API.
type GoogleMapsGeocoder struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewGoogleMapsGeocoder creates a new Google Maps geocoder. A nil httpClient
// gets a plain client with a 10 seconds timeout.
func NewGoogleMapsGeocoder(apiKey string, httpClient *http.Client) *GoogleMapsGeocoder {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	return &GoogleMapsGeocoder{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    defaultGoogleMapsURL,
	}
}

// SetBaseURL points the geocoder at another endpoint, such as a proxy.
func (g *GoogleMapsGeocoder) SetBaseURL(baseURL string) {
	g.baseURL = baseURL
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, etc.
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves address to the first result returned by Google Maps.
func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, address string) (*GeocodingResult, error) {
	if g.apiKey == "" {
		return nil, &GeocodingError{Type: ErrorTypeMissingKey, Message: "google maps api key not configured"}
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "empty address"}
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building geocoding request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		errType := ErrorTypeNetworkError
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			errType = ErrorTypeTimeout
		}

		// the request URL carries the api key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}

		return nil, &GeocodingError{Type: errType, Message: "geocoding request failed", Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyHTTPError(resp.StatusCode)
	}

	var gmResp googleMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gmResp); err != nil {
		return nil, &GeocodingError{Type: ErrorTypeUnknown, Message: "decoding response", Err: err}
	}

	if gmResp.Status != "OK" {
		geoErr := classifyStatus(gmResp.Status)
		if gmResp.ErrorMessage != "" {
			geoErr.Err = errors.New(gmResp.ErrorMessage)
		}

		return nil, geoErr
	}

	if len(gmResp.Results) == 0 {
		return nil, &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("no results found for address: %s", address),
		}
	}

	result := gmResp.Results[0]

	// Determine confidence based on location_type
	confidence := "low"

	switch result.Geometry.LocationType {
	case "ROOFTOP", "RANGE_INTERPOLATED":
		confidence = "high"
	case "GEOMETRIC_CENTER":
		confidence = "medium"
	}

	return &GeocodingResult{
		Point: spatial.Point{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		},
		Confidence:  confidence,
		Provider:    "google_maps",
		DisplayName: result.FormattedAddress,
	}, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }

	return errors.As(err, &netErr) && netErr.Timeout()
}
