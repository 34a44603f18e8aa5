// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jcodagnone/restopicker/config"
	"github.com/jcodagnone/restopicker/finder"
	"github.com/jcodagnone/restopicker/geocoding"
	"github.com/jcodagnone/restopicker/places"
	"github.com/jcodagnone/restopicker/utils/httputils"
)

var configOptions = &config.Options{}

func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, *configOptions)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return cfg, nil
}

// newFinder wires the geocoder and the places client behind a finder.Service.
func newFinder(cfg *config.Config) *finder.Service {
	var trace io.Writer
	if cfg.HTTPTrace || cfg.HTTPBodyTrace {
		trace = os.Stderr
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "restopicker/" + Version
	}

	httpClient := httputils.NewClient(httputils.ClientOptions{
		UserAgent: userAgent,
		Timeout:   cfg.Timeout,
		Trace:     trace,
		TraceBody: cfg.HTTPBodyTrace,
	})

	return finder.NewService(
		cfg.GoogleAPIKey,
		geocoding.NewGoogleMapsGeocoder(cfg.GoogleAPIKey, httpClient),
		places.NewClient(cfg.GoogleAPIKey, httpClient),
	)
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&configOptions.EnvFile, "env-file", ".env", "dotenv file to load, ignored when missing")
	flags.StringVar(&configOptions.APIKey, "api-key", "", "Google API key, overrides GOOGLE_API_KEY")
	flags.StringVar(&configOptions.UserAgent, "user-agent", "", "User-Agent for outbound requests")
	flags.DurationVar(&configOptions.Timeout, "timeout", 10*time.Second, "timeout of each outbound request")
	flags.BoolVar(&configOptions.HTTPTrace, "trace-http", false, "Display HTTP requests-responses")
	flags.BoolVar(&configOptions.HTTPBodyTrace, "trace-http-body", false, "Display HTTP requests-responses bodies")
	flags.BoolVar(
		&configOptions.KeyFromADC,
		"key-from-adc",
		false,
		"When no API key is configured, recover it with Application Default Credentials",
	)
	flags.StringVar(&configOptions.ADCProject, "adc-project", "", "Project holding the API key, defaults to the ADC project")
	flags.StringVar(&configOptions.ADCKeyDisplayName, "adc-key-name", "", "Display name of the API key to recover")
}
