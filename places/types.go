// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"fmt"

	"github.com/jcodagnone/restopicker/spatial"
)

// Restaurant is a search result shaped for API consumers.
type Restaurant struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Rating            *float64 `json:"rating"`
	RecentRating      *float64 `json:"recent_rating"`
	RecentReviewCount int      `json:"recent_review_count"`
	MapsURL           string   `json:"maps_url"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type rectangle struct {
	Low  latLng `json:"low"`
	High latLng `json:"high"`
}

func newRectangle(b spatial.BoundingBox) rectangle {
	return rectangle{
		Low:  latLng{Latitude: b.Low.Lat, Longitude: b.Low.Lng},
		High: latLng{Latitude: b.High.Lat, Longitude: b.High.Lng},
	}
}

type searchTextRequest struct {
	TextQuery           string `json:"textQuery"`
	LocationRestriction struct {
		Rectangle rectangle `json:"rectangle"`
	} `json:"locationRestriction"`
	MaxResultCount int `json:"maxResultCount"`
}

type place struct {
	DisplayName *struct {
		Text *string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	Rating           *float64 `json:"rating"`
	GoogleMapsURI    string   `json:"googleMapsUri"`
	Reviews          []Review `json:"reviews"`
}

type searchTextResponse struct {
	Places []place        `json:"places"`
	Error  *ProviderError `json:"error"`
}

// ProviderError is the error payload returned by the places provider.
type ProviderError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("places provider error %d %s: %s", e.Code, e.Status, e.Message)
}
