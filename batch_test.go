package aiornot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatch_CountsAndOrdering(t *testing.T) {
	labels := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}

	summary, err := runBatch(context.Background(), labels, 3, BatchOptions{},
		func(ctx context.Context, idx int) (*string, error) {
			if idx%2 == 1 {
				return nil, &APIError{Kind: KindValidation, StatusCode: 422, Message: "bad input"}
			}
			out := fmt.Sprintf("report-%d", idx)
			return &out, nil
		})

	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, summary.Total, summary.Succeeded+summary.Failed)
	assert.Len(t, summary.Results, summary.Total)
	assert.NotEmpty(t, summary.RunID)

	// Outcomes land at their input's index regardless of completion order.
	for i, r := range summary.Results {
		assert.Equal(t, labels[i], r.Input)
		if i%2 == 1 {
			assert.Equal(t, "error", r.Status)
			assert.Equal(t, KindValidation, r.ErrorKind)
			assert.Nil(t, r.Result)
		} else {
			assert.Equal(t, "success", r.Status)
			require.NotNil(t, r.Result)
			assert.Equal(t, fmt.Sprintf("report-%d", i), *r.Result)
		}
	}

	assert.Len(t, summary.Successful(), 3)
	assert.Len(t, summary.Errors(), 2)
	assert.InDelta(t, 0.6, summary.SuccessRate(), 1e-9)
}

func TestRunBatch_FailFast(t *testing.T) {
	labels := []string{"one", "two", "three", "four"}
	wantErr := &APIError{Kind: KindRateLimit, StatusCode: 429, Message: "Rate limit exceeded"}

	summary, err := runBatch(context.Background(), labels, 1, BatchOptions{FailFast: true},
		func(ctx context.Context, idx int) (*int, error) {
			if idx == 1 {
				return nil, wantErr
			}
			return &idx, nil
		})

	require.Error(t, err)
	assert.Nil(t, summary)
	assert.True(t, errors.Is(err, ErrRateLimit))
}

func TestRunBatch_FailFastOff(t *testing.T) {
	labels := []string{"one", "two", "three"}

	summary, err := runBatch(context.Background(), labels, 2, BatchOptions{},
		func(ctx context.Context, idx int) (*int, error) {
			if idx == 0 {
				return nil, &TimeoutError{Op: "image analysis", Err: context.DeadlineExceeded}
			}
			return &idx, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, KindTimeout, summary.Results[0].ErrorKind)
}

func TestRunBatch_ProgressMonotonic(t *testing.T) {
	labels := make([]string, 8)
	for i := range labels {
		labels[i] = fmt.Sprintf("item-%d", i)
	}

	var reported []int
	var totals []int
	summary, err := runBatch(context.Background(), labels, 4, BatchOptions{
		OnProgress: func(completed, total int) {
			reported = append(reported, completed)
			totals = append(totals, total)
		},
	}, func(ctx context.Context, idx int) (*int, error) {
		return &idx, nil
	})

	require.NoError(t, err)
	require.Len(t, reported, summary.Total)

	for i, completed := range reported {
		assert.Equal(t, i+1, completed, "completed count must increase by one per call")
		assert.Equal(t, len(labels), totals[i])
	}
}

func TestRunBatch_ConcurrencyBound(t *testing.T) {
	labels := make([]string, 10)
	for i := range labels {
		labels[i] = fmt.Sprintf("item-%d", i)
	}

	var inFlight, peak atomic.Int32
	_, err := runBatch(context.Background(), labels, 5, BatchOptions{MaxConcurrency: 2},
		func(ctx context.Context, idx int) (*int, error) {
			cur := inFlight.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return &idx, nil
		})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunBatch_Empty(t *testing.T) {
	summary, err := runBatch(context.Background(), nil, 5, BatchOptions{},
		func(ctx context.Context, idx int) (*int, error) {
			t.Fatal("op must not run for an empty batch")
			return nil, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.SuccessRate())
}

func TestBatchOptionsConcurrency(t *testing.T) {
	assert.Equal(t, 5, BatchOptions{}.concurrency(5))
	assert.Equal(t, 5, BatchOptions{MaxConcurrency: -1}.concurrency(5))
	assert.Equal(t, 9, BatchOptions{MaxConcurrency: 9}.concurrency(5))
}

func TestBatchResultJSONL(t *testing.T) {
	t.Run("success record", func(t *testing.T) {
		report := "the-report"
		r := BatchResult[string]{
			Input:      "photo.jpg",
			Status:     "success",
			Result:     &report,
			DurationMS: 12.5,
		}

		line, err := r.JSONL()
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &decoded))
		assert.Equal(t, "success", decoded["status"])
		assert.Equal(t, "photo.jpg", decoded["input"])
		assert.Equal(t, "the-report", decoded["result"])
		assert.Equal(t, 12.5, decoded["duration_ms"])
		assert.NotContains(t, decoded, "error")
		assert.NotContains(t, decoded, "message")
	})

	t.Run("error record", func(t *testing.T) {
		r := BatchResult[string]{
			Input:     "broken.jpg",
			Status:    "error",
			ErrorKind: KindValidation,
			Message:   "[422] Request validation failed",
		}

		line, err := r.JSONL()
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &decoded))
		assert.Equal(t, "error", decoded["status"])
		assert.Equal(t, "validation", decoded["error"])
		assert.Equal(t, "[422] Request validation failed", decoded["message"])
		assert.NotContains(t, decoded, "result")
	})
}

func TestBatchSummaryWriteJSONL(t *testing.T) {
	ok := "fine"
	summary := &BatchSummary[string]{
		RunID: "run-123",
		Results: []BatchResult[string]{
			{Input: "a.jpg", Status: "success", Result: &ok, DurationMS: 3},
			{Input: "b.jpg", Status: "error", ErrorKind: KindServer, Message: "[500] Server error", DurationMS: 1},
		},
		Total:     2,
		Succeeded: 1,
		Failed:    1,
	}

	var buf strings.Builder
	require.NoError(t, summary.WriteJSONL(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3, "one line per result plus the trailing summary")

	for i, line := range lines {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record), "line %d must be a standalone JSON object", i)
	}

	var tail map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &tail))
	assert.Equal(t, "summary", tail["status"])
	assert.Equal(t, "run-123", tail["run_id"])
	assert.Equal(t, float64(2), tail["total"])
	assert.Equal(t, float64(1), tail["succeeded"])
	assert.Equal(t, float64(1), tail["failed"])
	assert.Equal(t, 0.5, tail["success_rate"])
}

func TestItemString(t *testing.T) {
	assert.Equal(t, "photos/cat.jpg", FileItem("photos/cat.jpg").String())
	assert.Equal(t, "(4 bytes)", DataItem([]byte{1, 2, 3, 4}).String())
}

func TestFileItems(t *testing.T) {
	items := FileItems([]string{"a.jpg", "b.jpg"})
	require.Len(t, items, 2)
	assert.Equal(t, "a.jpg", items[0].Path)
	assert.Equal(t, "b.jpg", items[1].Path)
}

func TestBatchExternalID(t *testing.T) {
	assert.Equal(t, "", batchExternalID("", 3))
	assert.Equal(t, "run_0", batchExternalID("run", 0))
	assert.Equal(t, "run_7", batchExternalID("run", 7))
}
