// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package config assembles the read-only process configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvAPIKey        = "GOOGLE_API_KEY"
	EnvListenAddr    = "RESTOPICKER_ADDR"
	EnvCountriesPath = "RESTOPICKER_COUNTRIES"
	EnvADCProject    = "GOOGLE_CLOUD_PROJECT"
)

const (
	defaultListenAddr        = "0.0.0.0:8000"
	defaultADCKeyDisplayName = "Restopicker Maps Key"
	defaultTimeout           = 10 * time.Second
)

// Config is built once at startup and handed to every component.
type Config struct {
	// GoogleAPIKey authorizes both the geocoding and the places calls
	GoogleAPIKey string

	// ListenAddr is where the HTTP server listens
	ListenAddr string

	// CountriesPath overrides the embedded country table
	CountriesPath string

	// UserAgent is the User-Agent header to use in outbound requests
	UserAgent string

	// Enables light tracing of outbound HTTP requests and responses
	HTTPTrace bool

	// Enables full HTTP body tracing
	HTTPBodyTrace bool

	// Timeout bounds each outbound request
	Timeout time.Duration
}

// Options are the command line overrides applied on top of the environment.
type Options struct {
	// EnvFile is the dotenv file to load; a missing file is not an error
	EnvFile string

	APIKey        string
	ListenAddr    string
	CountriesPath string
	UserAgent     string
	HTTPTrace     bool
	HTTPBodyTrace bool
	Timeout       time.Duration

	// KeyFromADC recovers the API key through Application Default
	// Credentials when no key is otherwise configured
	KeyFromADC bool

	// ADCProject is the project holding the key, defaults to the ADC project
	ADCProject string

	// ADCKeyDisplayName is the display name of the key to recover
	ADCKeyDisplayName string
}

// KeyFetcher recovers an API key by display name.
type KeyFetcher func(ctx context.Context, projectID, displayName string) (string, error)

// HasAPIKey reports whether a Google API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.GoogleAPIKey != ""
}

// Load builds the configuration from the dotenv file, the environment and the
// given overrides, in increasing order of precedence.
func Load(ctx context.Context, opts Options) (*Config, error) {
	return load(ctx, opts, APIKeyFromADC)
}

func load(ctx context.Context, opts Options, fetchKey KeyFetcher) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	// godotenv never overrides variables already present in the environment
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := &Config{
		GoogleAPIKey:  os.Getenv(EnvAPIKey),
		ListenAddr:    os.Getenv(EnvListenAddr),
		CountriesPath: os.Getenv(EnvCountriesPath),
		UserAgent:     opts.UserAgent,
		HTTPTrace:     opts.HTTPTrace,
		HTTPBodyTrace: opts.HTTPBodyTrace,
		Timeout:       opts.Timeout,
	}

	if opts.APIKey != "" {
		cfg.GoogleAPIKey = opts.APIKey
	}

	if opts.ListenAddr != "" {
		cfg.ListenAddr = opts.ListenAddr
	}

	if opts.CountriesPath != "" {
		cfg.CountriesPath = opts.CountriesPath
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.GoogleAPIKey == "" && opts.KeyFromADC {
		log.Printf("%s is not set. Attempting to retrieve via ADC...", EnvAPIKey)

		project := opts.ADCProject
		if project == "" {
			project = os.Getenv(EnvADCProject)
		}

		displayName := opts.ADCKeyDisplayName
		if displayName == "" {
			displayName = defaultADCKeyDisplayName
		}

		key, err := fetchKey(ctx, project, displayName)
		if err != nil {
			log.Printf("Failed to retrieve API key via ADC: %v", err)
		} else {
			log.Println("✅ Successfully retrieved Google API Key via ADC")

			cfg.GoogleAPIKey = key
		}
	}

	if !cfg.HasAPIKey() {
		log.Printf("%s is not set. Searches will fail until it is configured.", EnvAPIKey)
	}

	return cfg, nil
}
