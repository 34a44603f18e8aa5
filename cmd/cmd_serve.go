// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/restopicker/countries"
	"github.com/jcodagnone/restopicker/server"
	"github.com/spf13/cobra"
)

var serveDebug bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the restaurant finder web API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		table, err := countries.Load(cfg.CountriesPath)
		if err != nil {
			return fmt.Errorf("loading countries: %w", err)
		}

		if !serveDebug {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := server.NewServer(newFinder(cfg), table, cfg.ListenAddr)

		fmt.Println("🍽️  Restaurant finder starting...")
		fmt.Printf("📍 Open http://%s/api/random-letter\n", cfg.ListenAddr)

		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&configOptions.ListenAddr, "addr", "", "listen address, overrides RESTOPICKER_ADDR (default 0.0.0.0:8000)")
	serveCmd.Flags().StringVar(&configOptions.CountriesPath, "countries", "", "countries JSON file, overrides RESTOPICKER_COUNTRIES")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "run gin in debug mode")

	rootCmd.AddCommand(serveCmd)
}
