package aiornot

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Item is one input to a batch operation: either a local file path or raw
// bytes already in memory.
type Item struct {
	// Path is the local file to read, when set.
	Path string
	// Data is the raw content, when Path is empty.
	Data []byte
}

// FileItem builds a batch input from a local file path.
func FileItem(path string) Item {
	return Item{Path: path}
}

// DataItem builds a batch input from in-memory bytes.
func DataItem(data []byte) Item {
	return Item{Data: data}
}

// FileItems builds batch inputs from a list of file paths.
func FileItems(paths []string) []Item {
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = FileItem(p)
	}
	return items
}

// String returns the display label for the item: the file path, or a byte
// count for in-memory data.
func (it Item) String() string {
	if it.Path != "" {
		return it.Path
	}
	return fmt.Sprintf("(%d bytes)", len(it.Data))
}

// BatchOptions configures one batch run. The zero value means: the
// operation's default concurrency, no progress reporting, record failures and
// continue.
type BatchOptions struct {
	// MaxConcurrency caps how many requests are in flight at once. Zero or
	// negative selects the operation's default (image 5, video 2, voice 3,
	// music 3, text 10).
	MaxConcurrency int
	// OnProgress, if set, is called after each item completes with the number
	// of completed items and the total. Calls are serialized; completed is
	// monotonically non-decreasing across calls.
	OnProgress func(completed, total int)
	// FailFast aborts the run on the first item failure. The error propagates
	// to the caller and already-completed outcomes are discarded.
	FailFast bool
}

func (o BatchOptions) concurrency(def int) int {
	if o.MaxConcurrency > 0 {
		return o.MaxConcurrency
	}
	return def
}

// BatchResult is the outcome of one item in a batch run: either a parsed
// report or an error kind and message. Input is the display label and may be
// rewritten by presentation code; everything else is set once by the engine.
type BatchResult[T any] struct {
	Input      string
	Status     string // "success" or "error"
	Result     *T
	ErrorKind  ErrorKind
	Message    string
	DurationMS float64
}

// Success reports whether the item was processed successfully.
func (r *BatchResult[T]) Success() bool {
	return r.Status == "success"
}

type jsonlResult struct {
	Status     string          `json:"status"`
	Input      string          `json:"input"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      ErrorKind       `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
	DurationMS *float64        `json:"duration_ms,omitempty"`
}

// JSONL returns the result as a single JSONL record.
func (r *BatchResult[T]) JSONL() (string, error) {
	line := jsonlResult{
		Status: r.Status,
		Input:  r.Input,
	}
	if r.Success() {
		raw, err := json.Marshal(r.Result)
		if err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		line.Result = raw
	} else {
		line.Error = r.ErrorKind
		line.Message = r.Message
	}
	if r.DurationMS > 0 {
		line.DurationMS = &r.DurationMS
	}
	data, err := json.Marshal(line)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// BatchSummary is the aggregate outcome of a batch run. Results are ordered
// by input, not by completion. Once returned by a batch operation the
// invariant Succeeded + Failed == Total == len(Results) holds.
type BatchSummary[T any] struct {
	// RunID uniquely identifies this run; it is echoed in the trailing JSONL
	// summary record so output from repeated runs can be told apart.
	RunID     string
	Results   []BatchResult[T]
	Total     int
	Succeeded int
	Failed    int
}

// SuccessRate returns Succeeded/Total, or 0.0 for an empty batch.
func (s *BatchSummary[T]) SuccessRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Succeeded) / float64(s.Total)
}

// Successful returns the parsed reports of all successful items.
func (s *BatchSummary[T]) Successful() []*T {
	var out []*T
	for i := range s.Results {
		if s.Results[i].Success() && s.Results[i].Result != nil {
			out = append(out, s.Results[i].Result)
		}
	}
	return out
}

// Errors returns the outcomes of all failed items.
func (s *BatchSummary[T]) Errors() []BatchResult[T] {
	var out []BatchResult[T]
	for i := range s.Results {
		if !s.Results[i].Success() {
			out = append(out, s.Results[i])
		}
	}
	return out
}

// WriteJSONL writes one JSON record per result followed by a trailing summary
// record, each on its own line.
func (s *BatchSummary[T]) WriteJSONL(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := range s.Results {
		line, err := s.Results[i].JSONL()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	tail, err := json.Marshal(map[string]any{
		"status":       "summary",
		"run_id":       s.RunID,
		"total":        s.Total,
		"succeeded":    s.Succeeded,
		"failed":       s.Failed,
		"success_rate": s.SuccessRate(),
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, string(tail)); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteJSONLFile writes the JSONL output to a file, creating or truncating
// it.
func (s *BatchSummary[T]) WriteJSONLFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteJSONL(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runBatch fans one operation out over n inputs with bounded concurrency.
//
// Admission is a weighted semaphore: at most maxConcurrency operations run at
// once, with waiters admitted in arrival (index) order. Each outcome lands at
// its input's index, so the summary is input-ordered no matter how
// completions interleave. The progress callback and the completion counter
// share one mutex with the results slice, which is what makes the reported
// completed value monotonic.
//
// On failure with FailFast set, the first error cancels admission of waiting
// items and propagates; the partial outcomes are discarded. Operations
// already in flight run on the caller's context and are left to finish.
func runBatch[T any](ctx context.Context, labels []string, defConcurrency int, opts BatchOptions, op func(ctx context.Context, idx int) (*T, error)) (*BatchSummary[T], error) {
	n := len(labels)
	results := make([]BatchResult[T], n)

	sem := semaphore.NewWeighted(int64(opts.concurrency(defConcurrency)))
	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		idx := i
		g.Go(func() error {
			// Admission uses the group context so a fail-fast abort stops
			// waiting items; the operation itself runs on the caller's
			// context so in-flight work is not torn down.
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			start := time.Now()
			result, err := op(ctx, idx)
			elapsed := float64(time.Since(start)) / float64(time.Millisecond)

			mu.Lock()
			if err != nil {
				results[idx] = BatchResult[T]{
					Input:      labels[idx],
					Status:     "error",
					ErrorKind:  Kind(err),
					Message:    err.Error(),
					DurationMS: elapsed,
				}
			} else {
				results[idx] = BatchResult[T]{
					Input:      labels[idx],
					Status:     "success",
					Result:     result,
					DurationMS: elapsed,
				}
			}
			completed++
			if opts.OnProgress != nil {
				opts.OnProgress(completed, n)
			}
			mu.Unlock()

			if err != nil && opts.FailFast {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &BatchSummary[T]{
		RunID:   uuid.NewString(),
		Results: results,
		Total:   n,
	}
	for i := range results {
		if results[i].Success() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary, nil
}

func itemLabels(items []Item) []string {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.String()
	}
	return labels
}

// batchExternalID derives the per-item external ID from a batch prefix.
func batchExternalID(prefix string, idx int) string {
	if prefix == "" {
		return ""
	}
	return fmt.Sprintf("%s_%d", prefix, idx)
}
