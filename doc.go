// Package aiornot provides a Go SDK for the AIORNOT AI-content-detection API.
//
// AIORNOT analyzes images, video, audio, and text and reports whether the
// content is AI-generated or human-made, along with confidence scores and
// additional facets such as deepfake, NSFW, and quality detection. This SDK
// wraps the REST API with typed requests and responses, and adds a concurrent
// batch engine for processing many inputs at once.
//
// # Quick Start
//
// You'll need an AIORNOT API key from https://aiornot.com/dashboard/api.
//
//	import "github.com/aiornot/gosdk"
//
//	// Create a client (reads AIORNOT_API_KEY if WithAPIKey is omitted)
//	client, err := aiornot.New(aiornot.WithAPIKey("your-api-key"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Analyze an image
//	resp, err := client.ImageReportFile(context.Background(), "photo.jpg", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(resp.Verdict(), resp.Confidence())
//
// # Content Kinds
//
// Each content kind has in-memory, file, and URL variants:
//
//   - Images: ImageReport, ImageReportFile, ImageReportURL
//   - Video: VideoReport, VideoReportFile, VideoReportURL
//   - Voice: VoiceReport, VoiceReportFile, VoiceReportURL
//   - Music: MusicReport, MusicReportFile, MusicReportURL
//   - Text: TextReport, TextReportFile
//
// # Batch Processing
//
// The batch methods fan a single-item operation out over many inputs with
// bounded concurrency, isolate per-item failures, and aggregate everything
// into an input-ordered BatchSummary:
//
//	summary, err := client.ImageReportBatch(ctx, aiornot.FileItems(paths), &aiornot.ImageBatchOptions{
//		BatchOptions: aiornot.BatchOptions{
//			MaxConcurrency: 5,
//			OnProgress: func(done, total int) {
//				fmt.Printf("\r%d/%d", done, total)
//			},
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	summary.WriteJSONL(os.Stdout)
//
// By default item failures are recorded as error outcomes and the run
// continues; set FailFast to abort on the first failure instead. Directory
// and CSV helpers (ImageReportDirectory, ImageReportCSV, ...) feed file
// listings into the same engine.
//
// # Error Handling
//
// Non-2xx API responses map onto a small taxonomy matched with errors.Is /
// errors.As: ErrAuthentication (401), ErrValidation (422), ErrRateLimit
// (429), ErrServer (5xx), and ErrAPI for anything else, all carried by
// *APIError with the status code and decoded body. Transport deadlines
// surface as *TimeoutError and missing local files as *FileError. The SDK
// never retries; a failure is reported to the caller immediately.
package aiornot
