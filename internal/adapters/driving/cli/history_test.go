package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
)

func TestHistoryCmd_ListsEntries(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	historyService = &mockHistoryService{entries: []driven.HistoryEntry{
		{
			Query:        "おすすめの漫画を教えて",
			Results:      3,
			FallbackUsed: true,
			Elapsed:      412 * time.Millisecond,
			At:           time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			Query:   "ワンピース",
			Results: 1,
			Elapsed: 180 * time.Millisecond,
			At:      time.Date(2025, 6, 1, 9, 29, 0, 0, time.UTC),
		},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "* 2025-06-01 09:30  おすすめの漫画を教えて (3 results, 412ms)")
	assert.Contains(t, out, "2025-06-01 09:29  ワンピース (1 results, 180ms)")
	assert.Contains(t, out, "* keyword fallback used")
}

func TestHistoryCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No searches recorded yet.")
}

func TestHistoryCmd_NotAvailable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	historyService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}
