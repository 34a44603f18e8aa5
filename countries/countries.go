// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package countries holds the read-only table of country names indexed by
// their initial letter.
package countries

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/jcodagnone/restopicker/utils/textutils"
)

// Alphabet is the set of letters a random pick is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

//go:embed countries.json
var embedded []byte

// ErrInvalidLetter is returned when a letter is not a key of the table.
var ErrInvalidLetter = errors.New("invalid letter")

// Table maps an upper-case letter to the countries starting with it.
type Table struct {
	byLetter map[string][]string
}

// Default returns the table compiled into the binary.
func Default() (*Table, error) {
	return Parse(embedded)
}

// Load reads a table from a JSON file shaped as {"A": ["Argentina", ...], ...}.
// An empty path loads the default table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is provided by admin
	if err != nil {
		return nil, fmt.Errorf("reading countries file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a JSON country table. Keys are folded to upper case.
func Parse(data []byte) (*Table, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing countries JSON: %w", err)
	}

	t := &Table{byLetter: make(map[string][]string, len(raw))}

	for key, names := range raw {
		letter := textutils.UpperASCIIFolding(key)
		if len(letter) != 1 {
			return nil, fmt.Errorf("countries key %q is not a single letter", key)
		}

		existing, ok := t.byLetter[letter]
		if !ok {
			existing = []string{}
		}

		t.byLetter[letter] = append(existing, names...)
	}

	return t, nil
}

// Lookup returns the countries starting with letter. Surrounding spaces,
// case and accents are ignored.
func (t *Table) Lookup(letter string) ([]string, error) {
	key := textutils.UpperASCIIFolding(letter)

	names, ok := t.byLetter[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLetter, letter)
	}

	return slices.Clone(names), nil
}

// Letters returns the keys of the table, sorted.
func (t *Table) Letters() []string {
	letters := make([]string, 0, len(t.byLetter))
	for letter := range t.byLetter {
		letters = append(letters, letter)
	}

	slices.Sort(letters)

	return letters
}

// RandomLetter returns a uniformly chosen letter of the Alphabet.
func RandomLetter() string {
	i := rand.IntN(len(Alphabet))

	return Alphabet[i : i+1]
}
