package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteHistoryResults outputs record summaries, dispatching based on the output format configured.
func WriteHistoryResults(summaries []schema.RecordSummary, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeHistoryJSON(summaries, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeHistoryCSV(summaries, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(summaries, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeHistoryJSON handles opening the file and calling the JSON writer.
func writeHistoryJSON(summaries []schema.RecordSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, summaries)
	}, "Wrote JSON")
}

// writeHistoryCSV handles opening the file and calling the CSV writer.
func writeHistoryCSV(summaries []schema.RecordSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()

		header := []string{"record_id", "filename", "samples", "anomalies", "created_at"}
		if err := csvWriter.Write(header); err != nil {
			return err
		}
		for _, s := range summaries {
			rec := []string{
				strconv.FormatInt(s.ID, 10),
				s.Filename,
				strconv.Itoa(s.SampleCount),
				strconv.Itoa(s.AnomalyCount),
				s.CreatedAt.Format(contract.DateTimeFormat),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote CSV")
}

// writeHistoryTable generates and writes the human-readable table.
func writeHistoryTable(summaries []schema.RecordSummary, cfg *contract.Config, writer io.Writer) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(writer, "No records found.")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"ID", "Filename", "Samples", "Anomalies", "Created"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxNameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, s := range summaries {
		data = append(data, []string{
			strconv.FormatInt(s.ID, 10),
			contract.TruncateName(s.Filename, maxNameWidth),
			strconv.Itoa(s.SampleCount),
			strconv.Itoa(s.AnomalyCount),
			s.CreatedAt.Format(contract.DateTimeFormat),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing %d records\n", len(summaries))
	return err
}
