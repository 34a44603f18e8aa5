// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jcodagnone/restopicker/finder"
	"github.com/jcodagnone/restopicker/places"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	Address  string
	RadiusKm float64
	JSON     bool
}

var searchOpts = &searchOptions{}

var searchCmd = &cobra.Command{
	Use:   "search <cuisine>",
	Short: "Find restaurants of a cuisine near an address",
	Long: `Geocodes the address and lists up to ten restaurants of the cuisine found
inside the square around it.

$ restopicker search Peruvian --address "Montevideo, Uruguay" --radius-km 3
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchOpts.Address == "" {
			return errors.New("--address is required")
		}

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}

		cuisine := strings.Join(args, " ")
		result, err := searchWithSpinner(cmd.Context(), newFinder(cfg), cuisine)
		if err != nil {
			return err
		}

		if searchOpts.JSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			return encoder.Encode(result)
		}

		return printRestaurants(os.Stdout, result)
	},
}

func searchWithSpinner(ctx context.Context, service *finder.Service, cuisine string) (*finder.Result, error) {
	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Searching "+cuisine),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}

	done := make(chan struct{})
	if bar != nil {
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					_ = bar.Add(1)
				}
			}
		}()
	}

	result, err := service.PerformSearch(ctx, cuisine, searchOpts.Address, searchOpts.RadiusKm)

	close(done)

	if bar != nil {
		_ = bar.Finish()
	}

	return result, err
}

func printRestaurants(w io.Writer, result *finder.Result) error {
	fmt.Fprintf(w, "📍 %s\n", result.Location)

	if len(result.Restaurants) == 0 {
		fmt.Fprintln(w, "No restaurants found")

		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tRATING\tRECENT\tADDRESS")

	for _, r := range result.Restaurants {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, formatRating(r.Rating), formatRecent(r), r.Address)
	}

	return tw.Flush()
}

func formatRating(v *float64) string {
	if v == nil {
		return "-"
	}

	return fmt.Sprintf("%.1f", *v)
}

func formatRecent(r places.Restaurant) string {
	if r.RecentRating == nil {
		return "-"
	}

	return fmt.Sprintf("%.1f (%d)", *r.RecentRating, r.RecentReviewCount)
}

func init() {
	searchCmd.Flags().StringVar(&searchOpts.Address, "address", "", "address to search around")
	searchCmd.Flags().Float64Var(&searchOpts.RadiusKm, "radius-km", finder.DefaultRadiusKm, "search radius in kilometers")
	searchCmd.Flags().BoolVar(&searchOpts.JSON, "json", false, "print the result as JSON")

	rootCmd.AddCommand(searchCmd)
}
