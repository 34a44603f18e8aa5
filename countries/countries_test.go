// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package countries

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.Equal(t, strings.Split(Alphabet, ""), table.Letters())

	names, err := table.Lookup("u")
	require.NoError(t, err)
	assert.Contains(t, names, "Uruguay")
	assert.Contains(t, names, "United Kingdom")

	for _, letter := range table.Letters() {
		names, err := table.Lookup(letter)
		require.NoError(t, err)

		for _, name := range names {
			assert.True(t, strings.HasPrefix(name, letter), "%s listed under %s", name, letter)
		}
	}
}

func TestLookup(t *testing.T) {
	table, err := Parse([]byte(`{"A": ["Argentina", "Austria"], "x": []}`))
	require.NoError(t, err)

	tests := []struct {
		name    string
		letter  string
		want    []string
		wantErr bool
	}{
		{name: "upper case", letter: "A", want: []string{"Argentina", "Austria"}},
		{name: "lower case", letter: "a", want: []string{"Argentina", "Austria"}},
		{name: "accented and padded", letter: " á ", want: []string{"Argentina", "Austria"}},
		{name: "known letter without countries", letter: "X", want: []string{}},
		{name: "unknown letter", letter: "B", wantErr: true},
		{name: "not a letter", letter: "42", wantErr: true},
		{name: "empty", letter: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Lookup(tt.letter)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidLetter)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	table, err := Parse([]byte(`{"A": ["Argentina"]}`))
	require.NoError(t, err)

	names, err := table.Lookup("A")
	require.NoError(t, err)
	names[0] = "Atlantis"

	again, err := table.Lookup("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Argentina"}, again)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"AB": []}`))
	require.Error(t, err)

	_, err = Parse([]byte(`not json`))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Q": ["Qatar"]}`), 0o600))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q"}, table.Letters())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	table, err = Load("")
	require.NoError(t, err)
	assert.Len(t, table.Letters(), len(Alphabet))
}

func TestRandomLetter(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 2000; i++ {
		letter := RandomLetter()
		require.Len(t, letter, 1)
		require.Contains(t, Alphabet, letter)
		seen[letter] = true
	}

	// 2000 draws over 26 letters miss one with negligible probability.
	assert.Len(t, seen, len(Alphabet))
}
