package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/angelmondragon/sportomic-backend/internal/ingest"
	"github.com/angelmondragon/sportomic-backend/pkg/enums"
)

// loadBatch reads a seed file shaped like the /import body.
func loadBatch(path string) (ingest.Batch, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ingest.Batch{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	body, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ingest.Batch{}, fmt.Errorf("seed file not found: %s", abs)
		}
		return ingest.Batch{}, fmt.Errorf("reading %s: %w", abs, err)
	}
	batch, err := ingest.DecodeBatch(body)
	if err != nil {
		return ingest.Batch{}, fmt.Errorf("decoding %s: %w", abs, err)
	}
	return batch, nil
}

func printSummary(w io.Writer, summary ingest.Summary) {
	for _, dataset := range enums.Datasets {
		fmt.Fprintf(w, "%-12s %s\n", dataset, summary[dataset])
	}
}
