package aiornot

import (
	"context"
)

// VoiceReport analyzes voice/speech audio from in-memory bytes. The filename
// is carried into the upload; pass "" for the default.
func (c *Client) VoiceReport(ctx context.Context, data []byte, filename string) (*VoiceReportResponse, error) {
	if filename == "" {
		filename = "audio.mp3"
	}
	resp, err := c.postFile(ctx, "voice analysis", "/v1/reports/voice", nil, "file", filename, data)
	if err != nil {
		return nil, err
	}
	var out VoiceReportResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VoiceReportFile analyzes voice/speech audio from a local file path.
func (c *Client) VoiceReportFile(ctx context.Context, path string) (*VoiceReportResponse, error) {
	data, name, err := readInput(FileItem(path), "audio.mp3")
	if err != nil {
		return nil, err
	}
	return c.VoiceReport(ctx, data, name)
}

// VoiceReportURL analyzes voice/speech audio hosted at a remote URL.
func (c *Client) VoiceReportURL(ctx context.Context, audioURL string) (*VoiceReportResponse, error) {
	resp, err := c.postObjectURL(ctx, "voice analysis", "/v1/reports/voice", nil, audioURL)
	if err != nil {
		return nil, err
	}
	var out VoiceReportResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AudioBatchOptions configures a voice or music batch run.
type AudioBatchOptions struct {
	BatchOptions
}

// VoiceReportBatch analyzes many voice audio files concurrently.
func (c *Client) VoiceReportBatch(ctx context.Context, items []Item, opts *AudioBatchOptions) (*BatchSummary[VoiceReportResponse], error) {
	if opts == nil {
		opts = &AudioBatchOptions{}
	}
	return runBatch(ctx, itemLabels(items), DefaultVoiceConcurrency, opts.BatchOptions,
		func(ctx context.Context, idx int) (*VoiceReportResponse, error) {
			data, name, err := readInput(items[idx], "audio.mp3")
			if err != nil {
				return nil, err
			}
			return c.VoiceReport(ctx, data, name)
		})
}

// VoiceReportDirectory analyzes every audio file found in a directory,
// matching by extension (AudioExtensions).
func (c *Client) VoiceReportDirectory(ctx context.Context, dir string, recursive bool, opts *AudioBatchOptions) (*BatchSummary[VoiceReportResponse], error) {
	files, err := CollectDirectory(dir, AudioExtensions, recursive)
	if err != nil {
		return nil, err
	}
	return c.VoiceReportBatch(ctx, FileItems(files), opts)
}

// VoiceReportCSV analyzes the audio files listed in a CSV column.
func (c *Client) VoiceReportCSV(ctx context.Context, csvPath string, csvOpts CSVOptions, opts *AudioBatchOptions) (*BatchSummary[VoiceReportResponse], error) {
	files, err := CollectCSV(csvPath, csvOpts)
	if err != nil {
		return nil, err
	}
	return c.VoiceReportBatch(ctx, FileItems(files), opts)
}

// MusicReport analyzes music audio from in-memory bytes.
func (c *Client) MusicReport(ctx context.Context, data []byte, filename string) (*MusicReportResponse, error) {
	if filename == "" {
		filename = "audio.mp3"
	}
	resp, err := c.postFile(ctx, "music analysis", "/v1/reports/music", nil, "file", filename, data)
	if err != nil {
		return nil, err
	}
	var out MusicReportResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MusicReportFile analyzes music audio from a local file path.
func (c *Client) MusicReportFile(ctx context.Context, path string) (*MusicReportResponse, error) {
	data, name, err := readInput(FileItem(path), "audio.mp3")
	if err != nil {
		return nil, err
	}
	return c.MusicReport(ctx, data, name)
}

// MusicReportURL analyzes music audio hosted at a remote URL.
func (c *Client) MusicReportURL(ctx context.Context, audioURL string) (*MusicReportResponse, error) {
	resp, err := c.postObjectURL(ctx, "music analysis", "/v1/reports/music", nil, audioURL)
	if err != nil {
		return nil, err
	}
	var out MusicReportResponse
	if err := decodeReport(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MusicReportBatch analyzes many music audio files concurrently.
func (c *Client) MusicReportBatch(ctx context.Context, items []Item, opts *AudioBatchOptions) (*BatchSummary[MusicReportResponse], error) {
	if opts == nil {
		opts = &AudioBatchOptions{}
	}
	return runBatch(ctx, itemLabels(items), DefaultMusicConcurrency, opts.BatchOptions,
		func(ctx context.Context, idx int) (*MusicReportResponse, error) {
			data, name, err := readInput(items[idx], "audio.mp3")
			if err != nil {
				return nil, err
			}
			return c.MusicReport(ctx, data, name)
		})
}

// MusicReportDirectory analyzes every audio file found in a directory,
// matching by extension (AudioExtensions).
func (c *Client) MusicReportDirectory(ctx context.Context, dir string, recursive bool, opts *AudioBatchOptions) (*BatchSummary[MusicReportResponse], error) {
	files, err := CollectDirectory(dir, AudioExtensions, recursive)
	if err != nil {
		return nil, err
	}
	return c.MusicReportBatch(ctx, FileItems(files), opts)
}

// MusicReportCSV analyzes the audio files listed in a CSV column.
func (c *Client) MusicReportCSV(ctx context.Context, csvPath string, csvOpts CSVOptions, opts *AudioBatchOptions) (*BatchSummary[MusicReportResponse], error) {
	files, err := CollectCSV(csvPath, csvOpts)
	if err != nil {
		return nil, err
	}
	return c.MusicReportBatch(ctx, FileItems(files), opts)
}
