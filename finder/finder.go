// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package finder answers "find restaurants of this cuisine near this address"
// by chaining a geocoder and a places search.
package finder

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jcodagnone/restopicker/geocoding"
	"github.com/jcodagnone/restopicker/places"
	"github.com/jcodagnone/restopicker/spatial"
)

// DefaultRadiusKm is used when the caller does not provide a positive radius.
const DefaultRadiusKm = 5.0

// logCellResolution is the H3 resolution (~5 km² cells) used to log where
// searches happen.
const logCellResolution = 7

var (
	// ErrConfiguration is returned when the API key is not configured.
	ErrConfiguration = errors.New("google api key not configured")

	// ErrLocationNotFound is returned when the address cannot be geocoded.
	ErrLocationNotFound = errors.New("location not found")
)

// PlacesSearcher finds restaurants around a point.
type PlacesSearcher interface {
	Search(ctx context.Context, cuisineText string, center spatial.Point, radiusMeters float64) ([]places.Restaurant, error)
}

// Result is the answer to a single search.
type Result struct {
	Restaurants []places.Restaurant `json:"restaurants"`
	Location    spatial.Point       `json:"location"`
}

// Service orchestrates geocoding and places search.
type Service struct {
	apiKey   string
	geocoder geocoding.Geocoder
	places   PlacesSearcher
}

// NewService creates a Service. apiKey is only checked for presence, the
// collaborators carry their own copy.
func NewService(apiKey string, geocoder geocoding.Geocoder, searcher PlacesSearcher) *Service {
	return &Service{
		apiKey:   apiKey,
		geocoder: geocoder,
		places:   searcher,
	}
}

// PerformSearch geocodes address and searches cuisine within radiusKm of it.
//
// It fails with ErrConfiguration before any network call when no key is
// configured, and with ErrLocationNotFound when the address does not resolve.
// A failing places provider yields an empty restaurant list, not an error.
func (s *Service) PerformSearch(ctx context.Context, cuisine, address string, radiusKm float64) (*Result, error) {
	if s.apiKey == "" {
		return nil, ErrConfiguration
	}

	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	geo, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		log.Printf("Geocoding %q failed: %v", address, err)

		return nil, fmt.Errorf("%w: %w", ErrLocationNotFound, err)
	}

	location := geo.Point
	radiusMeters := radiusKm * 1000

	restaurants, err := s.places.Search(ctx, cuisine, location, radiusMeters)
	if err != nil {
		log.Printf("Places search for %q failed, returning no results: %v", cuisine, err)

		restaurants = []places.Restaurant{}
	}

	if restaurants == nil {
		restaurants = []places.Restaurant{}
	}

	cellLabel := "unknown"
	if cell, err := location.Cell(logCellResolution); err == nil {
		cellLabel = cell.String()
	}

	log.Printf("Search %q within %.1f km of cell %s: %d restaurants", cuisine, radiusKm, cellLabel, len(restaurants))

	return &Result{
		Restaurants: restaurants,
		Location:    location,
	}, nil
}
