package aiornot

import (
	"context"
)

// Default per-kind concurrency caps for batch runs. Video analysis is the
// most expensive backend operation, text the cheapest.
const (
	DefaultImageConcurrency = 5
	DefaultVideoConcurrency = 2
	DefaultVoiceConcurrency = 3
	DefaultMusicConcurrency = 3
	DefaultTextConcurrency  = 10
)

// ImageReportOptions are the advisory parameters for one image analysis.
// Only and Excluding select which analysis facets run; supplying both at once
// is passed through to the service unvalidated.
type ImageReportOptions struct {
	Only       []ImageAnalysisType
	Excluding  []ImageAnalysisType
	ExternalID string
}

func (o *ImageReportOptions) filters() reportFilters {
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

// ImageReport analyzes an image from in-memory bytes.
func (c *Client) ImageReport(ctx context.Context, data []byte, opts *ImageReportOptions) (*ImageReportResponse, error) {
	resp, err := c.postFile(ctx, "image analysis", "/v2/image/sync", opts.filters().values(), "image", "image", data)
	if err != nil {
		return nil, err
	}
	var out ImageReportResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImageReportFile analyzes an image from a local file path.
func (c *Client) ImageReportFile(ctx context.Context, path string, opts *ImageReportOptions) (*ImageReportResponse, error) {
	data, _, err := readInput(FileItem(path), "")
	if err != nil {
		return nil, err
	}
	return c.ImageReport(ctx, data, opts)
}

// ImageReportURL analyzes an image hosted at a remote URL. The service
// fetches the image itself.
func (c *Client) ImageReportURL(ctx context.Context, imageURL string, opts *ImageReportOptions) (*ImageReportResponse, error) {
	resp, err := c.postObjectURL(ctx, "image analysis", "/v2/image/sync", opts.filters().values(), imageURL)
	if err != nil {
		return nil, err
	}
	var out ImageReportResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImageBatchOptions configures an image batch run.
type ImageBatchOptions struct {
	BatchOptions
	Only      []ImageAnalysisType
	Excluding []ImageAnalysisType
	// ExternalIDPrefix, if set, tags item i with the external ID
	// "<prefix>_<i>".
	ExternalIDPrefix string
}

// ImageReportBatch analyzes many images concurrently. Items are file paths or
// in-memory bytes; outcomes come back in input order.
func (c *Client) ImageReportBatch(ctx context.Context, items []Item, opts *ImageBatchOptions) (*BatchSummary[ImageReportResponse], error) {
	if opts == nil {
		opts = &ImageBatchOptions{}
	}
	return runBatch(ctx, itemLabels(items), DefaultImageConcurrency, opts.BatchOptions,
		func(ctx context.Context, idx int) (*ImageReportResponse, error) {
			data, _, err := readInput(items[idx], "image")
			if err != nil {
				return nil, err
			}
			return c.ImageReport(ctx, data, &ImageReportOptions{
				Only:       opts.Only,
				Excluding:  opts.Excluding,
				ExternalID: batchExternalID(opts.ExternalIDPrefix, idx),
			})
		})
}

// ImageReportDirectory analyzes every image file found in a directory,
// matching by extension (ImageExtensions).
func (c *Client) ImageReportDirectory(ctx context.Context, dir string, recursive bool, opts *ImageBatchOptions) (*BatchSummary[ImageReportResponse], error) {
	files, err := CollectDirectory(dir, ImageExtensions, recursive)
	if err != nil {
		return nil, err
	}
	return c.ImageReportBatch(ctx, FileItems(files), opts)
}

// ImageReportCSV analyzes the image files listed in a CSV column.
func (c *Client) ImageReportCSV(ctx context.Context, csvPath string, csvOpts CSVOptions, opts *ImageBatchOptions) (*BatchSummary[ImageReportResponse], error) {
	files, err := CollectCSV(csvPath, csvOpts)
	if err != nil {
		return nil, err
	}
	return c.ImageReportBatch(ctx, FileItems(files), opts)
}
