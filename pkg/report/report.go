// Package report captures sort runs as structured JSON documents.
//
// A [Recorder] plugs into the observability hooks and collects a
// per-round trace while a tissue sorts itself. The finished [Report]
// can be written with [Write] or [WriteFile] and read back with
// [Read] for offline analysis.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/cellsort/pkg/errors"
)

// Swap records one adjacent exchange.
type Swap struct {
	// Pos is the zero-based chain position of the left cell before the
	// exchange.
	Pos   int    `json:"pos"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Round records one full pass over the chain.
type Round struct {
	Round int    `json:"round"`
	Swaps []Swap `json:"swaps,omitempty"`

	// Values is the chain state after the pass.
	Values []string `json:"values,omitempty"`
}

// Report is the full trace of one sort run.
type Report struct {
	Comparator string    `json:"comparator,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	Duration   string    `json:"duration"`

	Initial []string `json:"initial"`
	Final   []string `json:"final"`

	Rounds    int     `json:"rounds"`
	Swaps     int     `json:"swaps"`
	Converged bool    `json:"converged"`
	Trace     []Round `json:"trace,omitempty"`
}

// Recorder collects hook events into a [Report]. It implements
// [github.com/matzehuels/cellsort/pkg/observability.SortHooks].
//
// Snapshot, when set, is called after each round to capture the chain
// state for the trace.
type Recorder struct {
	Snapshot func() []string

	report  Report
	current *Round
	started time.Time
}

// NewRecorder starts a recording for the given initial chain state.
func NewRecorder(initial []string, comparator string) *Recorder {
	now := time.Now()
	return &Recorder{
		report: Report{
			Comparator: comparator,
			StartedAt:  now,
			Initial:    initial,
		},
		started: now,
	}
}

func (r *Recorder) OnRoundStart(round int) {
	r.current = &Round{Round: round}
}

func (r *Recorder) OnSwap(_, pos int, left, right any) {
	if r.current == nil {
		return
	}
	r.current.Swaps = append(r.current.Swaps, Swap{
		Pos:   pos,
		Left:  fmt.Sprint(left),
		Right: fmt.Sprint(right),
	})
}

func (r *Recorder) OnRoundComplete(_, _ int) {
	if r.current == nil {
		return
	}
	if r.Snapshot != nil {
		r.current.Values = r.Snapshot()
	}
	r.report.Trace = append(r.report.Trace, *r.current)
	r.current = nil
}

func (r *Recorder) OnConverged(rounds, swaps int, converged bool) {
	r.report.Rounds = rounds
	r.report.Swaps = swaps
	r.report.Converged = converged
}

// Report finalizes and returns the collected trace.
func (r *Recorder) Report(final []string) *Report {
	r.report.Final = final
	r.report.Duration = time.Since(r.started).String()
	return &r.report
}

// Write encodes a report as indented JSON.
func Write(rep *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	return nil
}

// WriteFile writes a report to a JSON file at path.
func WriteFile(rep *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return Write(rep, f)
}

// Read decodes a report previously written with [Write].
func Read(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode report")
	}
	return &rep, nil
}
