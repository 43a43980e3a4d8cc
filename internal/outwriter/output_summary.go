package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummaryResult outputs one analysis summary, dispatching based on the output format configured.
func WriteSummaryResult(summary schema.RecordSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSummaryJSON(summary, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSV(summary, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(summary, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryJSON handles opening the file and calling the JSON writer.
func writeSummaryJSON(summary schema.RecordSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, summary)
	}, "Wrote JSON")
}

// writeSummaryCSV handles opening the file and calling the CSV writer.
func writeSummaryCSV(summary schema.RecordSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()

		header := []string{"record_id", "filename", "index", "confidence", "label"}
		if err := csvWriter.Write(header); err != nil {
			return err
		}
		for i, idx := range summary.Indices {
			rec := []string{
				strconv.FormatInt(summary.ID, 10),
				summary.Filename,
				strconv.Itoa(idx),
				fmtFloat(summary.Confidences[i]),
				contract.GetPlainLabel(summary.Confidences[i]),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote CSV")
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(summary schema.RecordSummary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if len(summary.Indices) > 0 {
		table := tablewriter.NewWriter(writer)
		table.Header([]string{"Index", "Confidence", "Label"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for i, idx := range summary.Indices {
			confidence := summary.Confidences[i]
			label := contract.GetPlainLabel(confidence)
			if cfg.UseColors {
				label = contract.GetColorLabel(confidence)
			}
			data = append(data, []string{
				strconv.Itoa(idx),
				fmtFloat(confidence),
				label,
			})
		}

		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	recordNote := "not persisted"
	if summary.ID > 0 {
		recordNote = fmt.Sprintf("record %d", summary.ID)
	}
	if _, err := fmt.Fprintf(writer, "Flagged %d of %d samples in %s (%s)\n",
		summary.AnomalyCount, summary.SampleCount, summary.Filename, recordNote); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Records backend: %s\n",
		duration, cfg.RecordsBackend); err != nil {
		return err
	}
	return nil
}
