// Package main provides a performance benchmarking tool for the driftline CLI.
// It measures analysis times across different series sizes and store backends,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - driftline binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated series files and benchmark databases
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Series      string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoStoreRuns int
	StoreRuns   int
	SeriesSizes map[string]int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     5 * time.Minute,
		NoStoreRuns: 3,
		StoreRuns:   4,
		SeriesSizes: map[string]int{
			"small":  1_000,
			"medium": 10_000,
			"large":  100_000,
			"huge":   1_000_000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the driftline binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if driftline is available
	if _, err := exec.LookPath("driftline"); err != nil {
		return fmt.Errorf("driftline binary not found in PATH")
	}

	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work directory not found at %s", config.WorkDir)
	}

	return nil
}

// generateSeries writes a synthetic series CSV with a spike every 500 samples
// and returns the file path.
func generateSeries(config BenchmarkConfig, name string, samples int) (string, error) {
	path := filepath.Join(config.WorkDir, fmt.Sprintf("series_%s.csv", name))

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	var b strings.Builder
	b.WriteString("timestamp,value\n")
	for i := 1; i <= samples; i++ {
		value := "10.0"
		if i%500 == 0 {
			value = "42.0"
		}
		fmt.Fprintf(&b, "%d,%s\n", i, value)
		if b.Len() > 1<<20 {
			if _, err := file.WriteString(b.String()); err != nil {
				return "", err
			}
			b.Reset()
		}
	}
	if _, err := file.WriteString(b.String()); err != nil {
		return "", err
	}
	return path, nil
}

// runBenchmarks executes all benchmark tests across configured series sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d series, %v timeout, no-store: %d runs, store: %d runs\n",
		len(config.SeriesSizes), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	for _, name := range []string{"small", "medium", "large", "huge"} {
		samples := config.SeriesSizes[name]
		fmt.Printf("Benchmarking %s (%d samples)\n", name, samples)

		csvPath, err := generateSeries(config, name, samples)
		if err != nil {
			fmt.Printf("Failed to generate %s series: %v\n", name, err)
			continue
		}

		result := runBenchmarkSuite(config, name, "analyze", fmt.Sprintf("analysis (%d samples)", samples), csvPath)
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a series
func runBenchmarkSuite(config BenchmarkConfig, series, command, description, csvPath string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, series)

	dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%s.db", series))
	_ = os.Remove(dbPath)

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, csvPath, dbPath, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: Analysis without persistence
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: Analysis with SQLite persistence
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Series:      series,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes driftline analyze multiple times with the specified backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, csvPath, dbPath, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"analyze", csvPath,
		"--owner", "bench",
		"--scorer", "synthetic",
		"--records-backend", backend,
	}
	if backend == "sqlite" {
		args = append(args, "--records-db-connect", dbPath)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("driftline", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Analysis completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/driftline_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"series", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Series, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	fmt.Printf("Series Analysis:\n")
	for _, result := range results {
		fmt.Printf("  %-12s: No-store: %s, Cold: %s, Warm: %s\n", result.Series, result.NoStoreTime, result.ColdTime, result.WarmTime)
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
