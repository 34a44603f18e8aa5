// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jcodagnone/restopicker/config"
	"github.com/jcodagnone/restopicker/countries"
	"github.com/spf13/cobra"
)

var countriesPath string

var countriesCmd = &cobra.Command{
	Use:   "countries [letter]",
	Short: "List the countries for a letter, a random one when omitted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := countriesPath
		if path == "" {
			path = os.Getenv(config.EnvCountriesPath)
		}

		table, err := countries.Load(path)
		if err != nil {
			return fmt.Errorf("loading countries: %w", err)
		}

		letter := countries.RandomLetter()
		if len(args) == 1 {
			letter = args[0]
		}

		names, err := table.Lookup(letter)
		if err != nil {
			return err
		}

		fmt.Printf("%s: ", strings.ToUpper(letter))
		if len(names) == 0 {
			fmt.Println("no countries")

			return nil
		}

		fmt.Println(strings.Join(names, ", "))

		return nil
	},
}

func init() {
	countriesCmd.Flags().StringVar(&countriesPath, "countries", "", "countries JSON file, overrides RESTOPICKER_COUNTRIES")

	rootCmd.AddCommand(countriesCmd)
}
