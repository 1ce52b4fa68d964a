package commands

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/alpaca-client/alpaca-go/pkg/log"
)

func TestRunFilterByAttribute(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.alog")

	count, err := RunFilter(path, FilterOptions{Output: out, Attribute: "tracking"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 events, got %d", count)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events in output, got %d", len(events))
	}
	for _, e := range events {
		if e.Attribute != "tracking" {
			t.Errorf("unexpected attribute %q", e.Attribute)
		}
	}
}

func TestRunFilterByTransactionAndCategory(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.alog")

	count, err := RunFilter(path, FilterOptions{Output: out, TransactionID: 4, Category: "error"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 event, got %d", count)
	}
}

func TestRunFilterByTimeRange(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.alog")

	// Transactions 1 and 2 happen in the first three seconds.
	count, err := RunFilter(path, FilterOptions{
		Output:    out,
		TimeStart: "2026-03-01T21:00:00Z",
		TimeEnd:   "2026-03-01T21:00:03Z",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 events, got %d", count)
	}
}

func TestRunFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.alog")

	tests := []FilterOptions{
		{Output: out, TimeStart: "yesterday"},
		{Output: out, TimeEnd: "tomorrow"},
		{Output: out, Direction: "up"},
		{Output: out, Category: "frame"},
	}
	for _, opts := range tests {
		if _, err := RunFilter(path, opts); err == nil {
			t.Errorf("expected error for %+v", opts)
		}
	}
}

func TestRunFilterRejectsOversizedTransactionID(t *testing.T) {
	if strconv.IntSize == 32 {
		t.Skip("uint cannot exceed 32 bits")
	}
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.alog")

	// Truncated to 32 bits this would select transaction 2.
	tx := uint(math.MaxUint32)
	tx += 3
	count, err := RunFilter(path, FilterOptions{Output: out, TransactionID: tx})
	if err == nil {
		t.Fatalf("expected error, matched %d events", count)
	}
	if !strings.Contains(err.Error(), "tx") {
		t.Errorf("error should name the flag: %v", err)
	}
}
