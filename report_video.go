package aiornot

import (
	"context"
)

// VideoReportOptions are the advisory parameters for one video analysis.
type VideoReportOptions struct {
	Only       []VideoAnalysisType
	Excluding  []VideoAnalysisType
	ExternalID string
}

func (o *VideoReportOptions) filters() reportFilters {
	if o == nil {
		return reportFilters{}
	}
	f := reportFilters{externalID: o.ExternalID}
	for _, t := range o.Only {
		f.only = append(f.only, string(t))
	}
	for _, t := range o.Excluding {
		f.excluding = append(f.excluding, string(t))
	}
	return f
}

// VideoReport analyzes a video from in-memory bytes.
func (c *Client) VideoReport(ctx context.Context, data []byte, opts *VideoReportOptions) (*VideoReportResponse, error) {
	resp, err := c.postFile(ctx, "video analysis", "/v2/video/sync", opts.filters().values(), "video", "video", data)
	if err != nil {
		return nil, err
	}
	var out VideoReportResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VideoReportFile analyzes a video from a local file path.
func (c *Client) VideoReportFile(ctx context.Context, path string, opts *VideoReportOptions) (*VideoReportResponse, error) {
	data, _, err := readInput(FileItem(path), "")
	if err != nil {
		return nil, err
	}
	return c.VideoReport(ctx, data, opts)
}

// VideoReportURL analyzes a video hosted at a remote URL.
func (c *Client) VideoReportURL(ctx context.Context, videoURL string, opts *VideoReportOptions) (*VideoReportResponse, error) {
	resp, err := c.postObjectURL(ctx, "video analysis", "/v2/video/sync", opts.filters().values(), videoURL)
	if err != nil {
		return nil, err
	}
	var out VideoReportResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VideoBatchOptions configures a video batch run.
type VideoBatchOptions struct {
	BatchOptions
	Only             []VideoAnalysisType
	Excluding        []VideoAnalysisType
	ExternalIDPrefix string
}

// VideoReportBatch analyzes many videos concurrently. The default concurrency
// is the lowest of any kind: video analysis is the slowest backend operation.
func (c *Client) VideoReportBatch(ctx context.Context, items []Item, opts *VideoBatchOptions) (*BatchSummary[VideoReportResponse], error) {
	if opts == nil {
		opts = &VideoBatchOptions{}
	}
	return runBatch(ctx, itemLabels(items), DefaultVideoConcurrency, opts.BatchOptions,
		func(ctx context.Context, idx int) (*VideoReportResponse, error) {
			data, _, err := readInput(items[idx], "video")
			if err != nil {
				return nil, err
			}
			return c.VideoReport(ctx, data, &VideoReportOptions{
				Only:       opts.Only,
				Excluding:  opts.Excluding,
				ExternalID: batchExternalID(opts.ExternalIDPrefix, idx),
			})
		})
}

// VideoReportDirectory analyzes every video file found in a directory,
// matching by extension (VideoExtensions).
func (c *Client) VideoReportDirectory(ctx context.Context, dir string, recursive bool, opts *VideoBatchOptions) (*BatchSummary[VideoReportResponse], error) {
	files, err := CollectDirectory(dir, VideoExtensions, recursive)
	if err != nil {
		return nil, err
	}
	return c.VideoReportBatch(ctx, FileItems(files), opts)
}

// VideoReportCSV analyzes the video files listed in a CSV column.
func (c *Client) VideoReportCSV(ctx context.Context, csvPath string, csvOpts CSVOptions, opts *VideoBatchOptions) (*BatchSummary[VideoReportResponse], error) {
	files, err := CollectCSV(csvPath, csvOpts)
	if err != nil {
		return nil, err
	}
	return c.VideoReportBatch(ctx, FileItems(files), opts)
}
