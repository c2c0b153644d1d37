package aiornot

import (
	"context"
	"net/url"
)

// TextReportOptions are the advisory parameters for one text analysis.
type TextReportOptions struct {
	// IncludeAnnotations asks the service for block-level annotations marking
	// which spans look AI-generated.
	IncludeAnnotations bool
	ExternalID         string
}

func (o *TextReportOptions) filters() reportFilters {
	if o == nil {
		return reportFilters{}
	}
	return reportFilters{
		externalID:         o.ExternalID,
		includeAnnotations: o.IncludeAnnotations,
		annotationsSet:     o.IncludeAnnotations,
	}
}

// TextReport analyzes text for AI-generated content.
func (c *Client) TextReport(ctx context.Context, text string, opts *TextReportOptions) (*TextReportResponse, error) {
	form := url.Values{}
	form.Set("text", text)
	resp, err := c.postForm(ctx, "text analysis", "/v2/text/sync", opts.filters().values(), form)
	if err != nil {
		return nil, err
	}
	var out TextReportResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TextReportFile reads a local file and analyzes its contents as text.
func (c *Client) TextReportFile(ctx context.Context, path string, opts *TextReportOptions) (*TextReportResponse, error) {
	data, _, err := readInput(FileItem(path), "")
	if err != nil {
		return nil, err
	}
	return c.TextReport(ctx, string(data), opts)
}

// TextBatchOptions configures a text batch run.
type TextBatchOptions struct {
	BatchOptions
	IncludeAnnotations bool
	ExternalIDPrefix   string
}

// TextReportBatch analyzes many text strings concurrently. Outcome labels are
// the text contents themselves; callers presenting file-sourced text can
// relabel the results afterwards.
func (c *Client) TextReportBatch(ctx context.Context, texts []string, opts *TextBatchOptions) (*BatchSummary[TextReportResponse], error) {
	if opts == nil {
		opts = &TextBatchOptions{}
	}
	return runBatch(ctx, texts, DefaultTextConcurrency, opts.BatchOptions,
		func(ctx context.Context, idx int) (*TextReportResponse, error) {
			return c.TextReport(ctx, texts[idx], &TextReportOptions{
				IncludeAnnotations: opts.IncludeAnnotations,
				ExternalID:         batchExternalID(opts.ExternalIDPrefix, idx),
			})
		})
}
