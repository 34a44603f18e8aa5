// Copyright 2025 The ChapaUY Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"

	"github.com/uber/h3-go/v4"
)

const (
	earthRadius = 6371e3 // meters

	// KmPerDegree is the fixed approximation used for both axes: 1° ≈ 111 km.
	KmPerDegree = 111.0
)

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p Point) HaversineDistance(other Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Cell returns the H3 cell containing the point at the given resolution.
func (p Point) Cell(res int) (h3.Cell, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), res)
	if err != nil {
		return 0, fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
	}

	return cell, nil
}

// BoundingBox is a rectangle expressed by its south-west (Low) and
// north-east (High) corners.
type BoundingBox struct {
	Low  Point `json:"low"`
	High Point `json:"high"`
}

// RadiusToBounds converts a center point and a radius into a bounding box.
//
// Latitude uses 1° ≈ 111 km; longitude scales that by cos(lat). The longitude
// delta is not clamped, so near the poles it grows without limit and the box
// degenerates.
func RadiusToBounds(lat, lng, radiusKm float64) BoundingBox {
	deltaLat := radiusKm / KmPerDegree
	deltaLng := radiusKm / (KmPerDegree * math.Cos(lat*math.Pi/180))

	return BoundingBox{
		Low:  Point{Lat: lat - deltaLat, Lng: lng - deltaLng},
		High: Point{Lat: lat + deltaLat, Lng: lng + deltaLng},
	}
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return Point{
		Lat: (b.Low.Lat + b.High.Lat) / 2,
		Lng: (b.Low.Lng + b.High.Lng) / 2,
	}
}

// Contains reports whether p lies inside the box, edges included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.Low.Lat && p.Lat <= b.High.Lat &&
		p.Lng >= b.Low.Lng && p.Lng <= b.High.Lng
}

// HalfExtents returns the north-south and east-west distances, in meters,
// from the center of the box to its edges.
func (b BoundingBox) HalfExtents() (northSouth, eastWest float64) {
	c := b.Center()

	return c.HaversineDistance(Point{Lat: b.High.Lat, Lng: c.Lng}),
		c.HaversineDistance(Point{Lat: c.Lat, Lng: b.High.Lng})
}
