// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocoding resolves free-text addresses into coordinates.
package geocoding

import (
	"context"

	"github.com/jcodagnone/restopicker/spatial"
)

// GeocodingResult represents a geocoding result from any provider.
type GeocodingResult struct {
	Point       spatial.Point
	Confidence  string // high, medium, low
	Provider    string
	DisplayName string
}

// Geocoder interface for different geocoding providers.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodingResult, error)
}
