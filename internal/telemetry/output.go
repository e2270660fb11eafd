package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// Output writes tick samples to ticks.csv and run summaries to summary.csv.
// A nil *Output discards everything so callers need no guards.
type Output struct {
	mu sync.Mutex

	ticks   io.WriteCloser
	summary io.WriteCloser

	ticksHeaderWritten   bool
	summaryHeaderWritten bool
}

// NewOutput creates dir and the CSV files inside it. An empty dir disables
// output and returns nil.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	ticks, err := os.Create(filepath.Join(dir, "ticks.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating ticks.csv: %w", err)
	}
	summary, err := os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		ticks.Close()
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	return &Output{ticks: ticks, summary: summary}, nil
}

// NewWriterOutput wraps existing writers.
func NewWriterOutput(ticks, summary io.WriteCloser) *Output {
	return &Output{ticks: ticks, summary: summary}
}

// WriteRecords appends tick samples. Safe for concurrent use.
func (o *Output) WriteRecords(records []Record) error {
	if o == nil || len(records) == 0 {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := writeCSV(records, o.ticks, &o.ticksHeaderWritten); err != nil {
		return fmt.Errorf("writing ticks: %w", err)
	}
	return nil
}

// WriteSummary appends one run summary. Safe for concurrent use.
func (o *Output) WriteSummary(s Summary) error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := writeCSV([]Summary{s}, o.summary, &o.summaryHeaderWritten); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Close closes both files.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	err1 := o.ticks.Close()
	err2 := o.summary.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

func writeCSV[T any](rows []T, w io.Writer, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(rows, w); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, w)
}
