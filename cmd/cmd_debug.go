// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/jcodagnone/restopicker/places"
	"github.com/jcodagnone/restopicker/spatial"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugBoundsCmd = &cobra.Command{
	Use:   "bounds <lat> <lng> <radius-km>",
	Short: "Print the search rectangle for a center and a radius",
	Long: `Prints the bounding box sent to the places provider, and its half extents
in meters measured with the haversine distance.

$ restopicker debug bounds -34.9011 -56.1645 5
`,
	Args: cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		values := make([]float64, len(args))
		for i, arg := range args {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", arg, err)
			}

			values[i] = v
		}

		box := spatial.RadiusToBounds(values[0], values[1], values[2])
		northSouth, eastWest := box.HalfExtents()

		fmt.Printf("low:    %s\n", box.Low)
		fmt.Printf("high:   %s\n", box.High)
		fmt.Printf("center: %s\n", box.Center())
		fmt.Printf("half extents: %.0f m north-south, %.0f m east-west\n", northSouth, eastWest)

		return nil
	},
}

var debugRatingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Compute the recent rating of a JSON array of reviews read from stdin",
	Long: `Reads a JSON array of reviews, as returned by the places provider, and prints
the recent rating aggregate.

$ echo '[{"rating":5,"publishTime":"2025-06-01T10:00:00Z"}]' | restopicker debug rating
`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			fmt.Fprintln(os.Stderr, "Paste a JSON array of reviews, end with Ctrl-D…")
		}

		var reviews []places.Review
		if err := json.NewDecoder(os.Stdin).Decode(&reviews); err != nil {
			return fmt.Errorf("decoding reviews: %w", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(places.CalculateRecentRatingNow(reviews))
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugBoundsCmd)
	debugCmd.AddCommand(debugRatingCmd)
}
