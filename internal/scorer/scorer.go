// Package scorer wraps the external divergence scorer behind the Scorer
// capability. The production variant executes the proprietary rnse-core
// binary unmodified and treats everything it emits except the per-line
// divergence value as opaque metadata.
package scorer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/schema"
)

// External implements the Scorer interface by executing the rnse-core binary
// installed on the machine. Samples are written to stdin one per line; the
// binary replies with a line-oriented structured log on stdout.
type External struct {
	path string
}

var _ contract.Scorer = &External{} // Compile-time check

// NewExternal creates a scorer that runs the binary at path.
func NewExternal(path string) *External {
	return &External{path: path}
}

// scoreLine is the subset of each emitted log line the adapter interprets.
// Every other field is opaque pass-through metadata and is discarded.
type scoreLine struct {
	Divergence *float64 `json:"divergence"`
}

// Score runs the external scorer over the series. A missing or unstartable
// binary is ErrScorerUnavailable; a run that completes but emits a miscounted
// or malformed result is ErrScorerContractViolation. There are no retries at
// this layer: scoring is deterministic for a given (seed, series, config), so
// retrying without changing input cannot help.
func (s *External) Score(ctx context.Context, series schema.TimeSeries, cfg contract.ScorerConfig) ([]schema.ScoreLine, error) {
	binPath, err := exec.LookPath(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q not found on PATH", contract.ErrScorerUnavailable, s.path)
	}

	args := []string{
		"--seed", strconv.FormatInt(cfg.Seed, 10),
		"--count", strconv.Itoa(series.Len()),
		"--threshold", strconv.FormatFloat(cfg.Threshold, 'g', -1, 64),
		"--window", strconv.Itoa(cfg.Window),
	}
	if cfg.Smoothing > 0 {
		args = append(args, "--smoothing", strconv.FormatFloat(cfg.Smoothing, 'g', -1, 64))
	}

	var stdin bytes.Buffer
	for _, v := range series.Values {
		stdin.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		stdin.WriteByte('\n')
	}

	cmd := exec.CommandContext(ctx, binPath, args...)
	cmd.Stdin = &stdin
	out, err := cmd.Output()
	if err != nil {
		// A cancelled context kills the subprocess; that exit is the
		// caller's cancellation, not a scorer failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			return nil, fmt.Errorf("%w: scorer exited with %d: %s", contract.ErrScorerContractViolation, exitErr.ExitCode(), stderr)
		}
		return nil, fmt.Errorf("%w: cannot run %q: %v", contract.ErrScorerUnavailable, s.path, err)
	}

	lines, err := ParseScoreLog(out)
	if err != nil {
		return nil, err
	}
	return verifyCount(lines, series.Len())
}

// ParseScoreLog converts the scorer's line-oriented log into ScoreLines.
// Lines that fail to parse, lack a divergence field, or carry a negative
// divergence are dropped; the count invariant is re-checked by the caller.
func ParseScoreLog(out []byte) ([]schema.ScoreLine, error) {
	var lines []schema.ScoreLine
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var sl scoreLine
		if err := json.Unmarshal(raw, &sl); err != nil {
			continue
		}
		if sl.Divergence == nil || *sl.Divergence < 0 {
			continue
		}
		lines = append(lines, schema.ScoreLine{
			Index:      len(lines) + 1,
			Divergence: *sl.Divergence,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: cannot scan scorer output: %v", contract.ErrScorerContractViolation, err)
	}
	return lines, nil
}

// verifyCount enforces the count invariant: one ScoreLine per input sample.
// The external scorer is trusted to preserve ordering and count, but the
// adapter verifies rather than assumes.
func verifyCount(lines []schema.ScoreLine, want int) ([]schema.ScoreLine, error) {
	if len(lines) != want {
		return nil, fmt.Errorf("%w: got %d score lines for %d samples",
			contract.ErrScorerContractViolation, len(lines), want)
	}
	return lines, nil
}
