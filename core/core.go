// Package core has core logic for decoding, scoring and flag extraction.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/internal/outwriter"
	"github.com/mfaulds/driftline/internal/recordstore"
	"github.com/mfaulds/driftline/schema"
)

// ExecuteAnalyze runs the analysis pipeline on a CSV file and prints the
// resulting summary. It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, inputPath string) error {
	if err := contract.RequireOwner(cfg); err != nil {
		return err
	}

	start := time.Now()
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	sc := NewScorerFromConfig(cfg)
	var store contract.RecordStore
	if cfg.RecordsBackend != schema.NoneBackend {
		store = recordstore.Manager.GetRecordStore()
	}
	summary, err := RunAnalysis(ctx, sc, store, cfg, cfg.OwnerToken, filepath.Base(inputPath), raw)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSummary(summary, cfg, duration)
}

// ExecuteHistory lists the owner's stored records, most-recent first.
// It serves as the main entry point for the 'history' command.
func ExecuteHistory(ctx context.Context, cfg *contract.Config) error {
	if err := contract.RequireOwner(cfg); err != nil {
		return err
	}

	store := recordstore.Manager.GetRecordStore()
	if store == nil {
		return fmt.Errorf("record store is not initialized")
	}

	summaries, err := store.ListByOwner(ctx, cfg.OwnerToken)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	return outwriter.NewOutWriter().WriteHistory(summaries, cfg)
}

// ExecuteDownload re-encodes a stored record as annotated CSV and writes it to
// the configured output file or stdout. It serves as the main entry point for
// the 'download' command.
func ExecuteDownload(ctx context.Context, cfg *contract.Config, recordID int64) error {
	if err := contract.RequireOwner(cfg); err != nil {
		return err
	}

	store := recordstore.Manager.GetRecordStore()
	if store == nil {
		return fmt.Errorf("record store is not initialized")
	}

	data, err := DownloadRecord(ctx, store, cfg.OwnerToken, recordID)
	if err != nil {
		return err
	}

	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write download output: %w", err)
	}
	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 Wrote record %d to %s\n", recordID, cfg.OutputFile)
	}
	return nil
}
