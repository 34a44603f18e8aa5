// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "restopicker",
	Short: "pick a letter, a country's cuisine, and a restaurant nearby",
	Long: `
restopicker picks a random letter, lists the countries starting with it and
finds nearby restaurants serving a chosen cuisine, using Google Geocoding and
Google Places.

The Google API key is read from GOOGLE_API_KEY (a .env file is honored).
`,
	SilenceUsage: true,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
