package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/sportomic-backend/internal/ingest"
	"github.com/angelmondragon/sportomic-backend/pkg/enums"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed-data.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadBatch(t *testing.T) {
	path := writeSeed(t, `{"venues":[{"name":"Arena"}],"members":[{"name":"Asha"},{"name":"Ravi"}]}`)

	batch, err := loadBatch(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if batch.Len() != 3 {
		t.Fatalf("expected 3 records got %d", batch.Len())
	}
}

func TestLoadBatchErrors(t *testing.T) {
	if _, err := loadBatch(filepath.Join(t.TempDir(), "missing.json")); err == nil || !strings.Contains(err.Error(), "seed file not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, err := loadBatch(writeSeed(t, `{"venues":`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, ingest.Summary{
		enums.DatasetVenues:   {Upserted: 2},
		enums.DatasetBookings: {Inserted: 1, Failed: 1},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(enums.Datasets) {
		t.Fatalf("expected one line per dataset, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "venues") || !strings.Contains(lines[0], "upserted=2") {
		t.Fatalf("unexpected venues line %q", lines[0])
	}
	if !strings.Contains(lines[2], "inserted=1") || !strings.Contains(lines[2], "failed=1") {
		t.Fatalf("unexpected bookings line %q", lines[2])
	}
}
