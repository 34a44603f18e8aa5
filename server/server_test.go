// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/restopicker/countries"
	"github.com/jcodagnone/restopicker/finder"
	"github.com/jcodagnone/restopicker/places"
	"github.com/jcodagnone/restopicker/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchArgs struct {
	cuisine, address string
	radiusKm         float64
}

// MockSearcher records the calls and answers with a canned result.
type MockSearcher struct {
	result *finder.Result
	err    error
	calls  []searchArgs
}

func (m *MockSearcher) PerformSearch(_ context.Context, cuisine, address string, radiusKm float64) (*finder.Result, error) {
	m.calls = append(m.calls, searchArgs{cuisine: cuisine, address: address, radiusKm: radiusKm})

	return m.result, m.err
}

func setupServerTest(t *testing.T, searcher Searcher) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	table, err := countries.Parse([]byte(`{"A": ["Argentina", "Austria"], "X": []}`))
	require.NoError(t, err)

	return NewServer(searcher, table, "127.0.0.1:0").Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	h.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	return got
}

func TestRandomLetterAPI(t *testing.T) {
	h := setupServerTest(t, &MockSearcher{})

	w := do(t, h, http.MethodGet, "/api/random-letter", "")
	assert.Equal(t, http.StatusOK, w.Code)

	letter, ok := decode(t, w)["letter"].(string)
	require.True(t, ok)
	assert.Len(t, letter, 1)
	assert.Contains(t, countries.Alphabet, letter)
}

func TestGetCountriesAPI(t *testing.T) {
	h := setupServerTest(t, &MockSearcher{})

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/api/countries/A", http.StatusOK, `{"countries":["Argentina","Austria"]}`},
		{"/api/countries/a", http.StatusOK, `{"countries":["Argentina","Austria"]}`},
		{"/api/countries/X", http.StatusOK, `{"countries":[]}`},
		{"/api/countries/B", http.StatusBadRequest, `{"detail":"Invalid letter"}`},
		{"/api/countries/AB", http.StatusBadRequest, `{"detail":"Invalid letter"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestSearchAPI(t *testing.T) {
	rating := 4.5
	searcher := &MockSearcher{result: &finder.Result{
		Restaurants: []places.Restaurant{
			{Name: "Trattoria", Address: "1 High St", Rating: &rating, RecentRating: &rating, RecentReviewCount: 2, MapsURL: "https://maps/1"},
		},
		Location: spatial.Point{Lat: 51.5, Lng: -0.1},
	}}
	h := setupServerTest(t, searcher)

	w := do(t, h, http.MethodPost, "/api/search", `{"cuisine":"italian","address":"London, UK","radius_km":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"count": 1,
		"location": {"lat": 51.5, "lng": -0.1},
		"restaurants": [{
			"name": "Trattoria",
			"address": "1 High St",
			"rating": 4.5,
			"recent_rating": 4.5,
			"recent_review_count": 2,
			"maps_url": "https://maps/1"
		}]
	}`, w.Body.String())

	require.Len(t, searcher.calls, 1)
	assert.Equal(t, searchArgs{cuisine: "italian", address: "London, UK", radiusKm: 2}, searcher.calls[0])
}

func TestSearchAPIDefaultRadius(t *testing.T) {
	searcher := &MockSearcher{result: &finder.Result{Restaurants: []places.Restaurant{}}}
	h := setupServerTest(t, searcher)

	w := do(t, h, http.MethodPost, "/api/search", `{"cuisine":"sushi","address":"Tokyo"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"count":0,"restaurants":[],"location":{"lat":0,"lng":0}}`, w.Body.String())

	require.Len(t, searcher.calls, 1)
	assert.InDelta(t, finder.DefaultRadiusKm, searcher.calls[0].radiusKm, 1e-9)
}

func TestSearchAPIErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantDetail string
	}{
		{
			name:       "missing key",
			err:        finder.ErrConfiguration,
			wantCode:   http.StatusInternalServerError,
			wantDetail: "Google API key not configured. Please set GOOGLE_API_KEY in .env file.",
		},
		{
			name:       "location not found",
			err:        fmt.Errorf("%w: zero results", finder.ErrLocationNotFound),
			wantCode:   http.StatusBadRequest,
			wantDetail: "Could not find location. Try a format like 'London, UK' or 'New York, USA'.",
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantCode:   http.StatusInternalServerError,
			wantDetail: "Search failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupServerTest(t, &MockSearcher{err: tt.err})

			w := do(t, h, http.MethodPost, "/api/search", `{"cuisine":"italian","address":"Atlantis"}`)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantDetail, decode(t, w)["detail"])
		})
	}
}

func TestSearchAPIValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing cuisine", `{"address":"London"}`},
		{"missing address", `{"cuisine":"italian"}`},
		{"null cuisine", `{"cuisine":null,"address":"London"}`},
		{"malformed json", `{"cuisine":`},
		{"wrong radius type", `{"cuisine":"italian","address":"London","radius_km":"far"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &MockSearcher{}
			h := setupServerTest(t, searcher)

			w := do(t, h, http.MethodPost, "/api/search", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.NotEmpty(t, decode(t, w)["detail"])
			assert.Empty(t, searcher.calls)
		})
	}
}

func TestHealthAPI(t *testing.T) {
	h := setupServerTest(t, &MockSearcher{})

	w := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRunStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	table, err := countries.Default()
	require.NoError(t, err)

	srv := NewServer(&MockSearcher{}, table, "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSearchAPIAcceptsEmptyStrings(t *testing.T) {
	searcher := &MockSearcher{result: &finder.Result{Restaurants: []places.Restaurant{}}}
	h := setupServerTest(t, searcher)

	w := do(t, h, http.MethodPost, "/api/search", `{"cuisine":"","address":"London"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, searcher.calls, 1)
	assert.Equal(t, searchArgs{cuisine: "", address: "London", radiusKm: finder.DefaultRadiusKm}, searcher.calls[0])
}

func TestSearchAPIEmptyAddressIsNotFound(t *testing.T) {
	h := setupServerTest(t, &MockSearcher{err: fmt.Errorf("%w: empty address", finder.ErrLocationNotFound)})

	w := do(t, h, http.MethodPost, "/api/search", `{"cuisine":"italian","address":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
