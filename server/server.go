// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the restaurant finder and the country table over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/restopicker/countries"
	"github.com/jcodagnone/restopicker/finder"
	"github.com/jcodagnone/restopicker/places"
	"github.com/jcodagnone/restopicker/spatial"
)

// User facing messages.
const (
	msgMissingKey       = "Google API key not configured. Please set GOOGLE_API_KEY in .env file."
	msgLocationNotFound = "Could not find location. Try a format like 'London, UK' or 'New York, USA'."
	msgInvalidLetter    = "Invalid letter"
	msgSearchFailed     = "Search failed"
)

const shutdownTimeout = 10 * time.Second

// Searcher runs a restaurant search.
type Searcher interface {
	PerformSearch(ctx context.Context, cuisine, address string, radiusKm float64) (*finder.Result, error)
}

type Server struct {
	searcher  Searcher
	countries *countries.Table
	addr      string
	engine    *gin.Engine
}

// NewServer builds the server and its routes.
func NewServer(searcher Searcher, table *countries.Table, addr string) *Server {
	s := &Server{
		searcher:  searcher,
		countries: table,
		addr:      addr,
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", s.health)
	r.GET("/api/random-letter", s.randomLetter)
	r.GET("/api/countries/:letter", s.getCountries)
	r.POST("/api/search", s.search)

	s.engine = r

	return s
}

// Handler returns the http.Handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Printf("Listening on %s", s.addr)

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	log.Print("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	return nil
}

func (s *Server) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) randomLetter(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"letter": countries.RandomLetter()})
}

func (s *Server) getCountries(ctx *gin.Context) {
	names, err := s.countries.Lookup(ctx.Param("letter"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": msgInvalidLetter})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"countries": names})
}

// SearchRequest is the body of POST /api/search.
// Cuisine and address must be present but may be empty strings.
type SearchRequest struct {
	Cuisine  *string  `json:"cuisine" binding:"required"`
	Address  *string  `json:"address" binding:"required"`
	RadiusKm *float64 `json:"radius_km"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Success     bool                `json:"success"`
	Restaurants []places.Restaurant `json:"restaurants"`
	Count       int                 `json:"count"`
	Location    spatial.Point       `json:"location"`
}

func (s *Server) search(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})

		return
	}

	radiusKm := finder.DefaultRadiusKm
	if req.RadiusKm != nil {
		radiusKm = *req.RadiusKm
	}

	result, err := s.searcher.PerformSearch(ctx.Request.Context(), *req.Cuisine, *req.Address, radiusKm)

	switch {
	case errors.Is(err, finder.ErrConfiguration):
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": msgMissingKey})

		return
	case errors.Is(err, finder.ErrLocationNotFound):
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": msgLocationNotFound})

		return
	case err != nil:
		log.Printf("Search failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": msgSearchFailed})

		return
	}

	ctx.JSON(http.StatusOK, SearchResponse{
		Success:     true,
		Restaurants: result.Restaurants,
		Count:       len(result.Restaurants),
		Location:    result.Location,
	})
}
