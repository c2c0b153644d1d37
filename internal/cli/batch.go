package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aiornot/gosdk"
)

// batchFlags are the input/output flags shared by every batch subcommand.
type batchFlags struct {
	csvPath    string
	csvKey     string
	baseDir    string
	directory  string
	recursive  bool
	format     string // jsonl, summary or quiet
	output     string
	progress   bool
	noProgress bool

	concurrency int
	failFast    bool
}

func addBatchCSVFlags(cmd *cobra.Command, flags *batchFlags) {
	cmd.Flags().StringVar(&flags.csvPath, "csv", "", "Read file paths from CSV")
	cmd.Flags().StringVar(&flags.csvKey, "key", "file_path", "CSV column name for file path")
	cmd.Flags().StringVar(&flags.baseDir, "base-dir", "", "Base directory for CSV paths")
}

func addBatchInputFlags(cmd *cobra.Command, flags *batchFlags) {
	addBatchCSVFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.directory, "dir", "", "Process all files in directory")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "Include subdirectories (with --dir)")
}

func addBatchOutputFlags(cmd *cobra.Command, flags *batchFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "jsonl", "Output format: jsonl, summary or quiet")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write output to file")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Force progress display")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "Disable progress display")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "c", 0, "Max concurrent requests")
	cmd.Flags().BoolVar(&flags.failFast, "fail-fast", false, "Stop on first error")
}

// collectInputs resolves the batch input source: positional file arguments,
// --csv, or --dir, exactly one of which must be used.
func collectInputs(args []string, flags *batchFlags, extensions []string) ([]string, error) {
	sources := 0
	for _, used := range []bool{len(args) > 0, flags.csvPath != "", flags.directory != ""} {
		if used {
			sources++
		}
	}
	if sources == 0 {
		return nil, errors.New("no input specified: provide files, --csv, or --dir")
	}
	if sources > 1 {
		return nil, errors.New("multiple input sources specified: use only one of files, --csv, --dir")
	}

	switch {
	case flags.csvPath != "":
		return aiornot.CollectCSV(flags.csvPath, aiornot.CSVOptions{Key: flags.csvKey, BaseDir: flags.baseDir})
	case flags.directory != "":
		return aiornot.CollectDirectory(flags.directory, extensions, flags.recursive)
	default:
		return args, nil
	}
}

func (f *batchFlags) showProgress() bool {
	if f.progress {
		return true
	}
	if f.noProgress {
		return false
	}
	return isTerminal(os.Stderr)
}

// progressFuncs returns the per-item callback and a finalizer that ends the
// progress line.
func progressFuncs(flags *batchFlags) (func(int, int), func()) {
	if !flags.showProgress() {
		return nil, func() {}
	}
	shown := false
	onProgress := func(done, total int) {
		shown = true
		fmt.Fprintf(os.Stderr, "\rProcessing: %d/%d", done, total)
	}
	onDone := func() {
		if shown {
			fmt.Fprintln(os.Stderr)
		}
	}
	return onProgress, onDone
}

func batchOptions(flags *batchFlags, onProgress func(int, int)) aiornot.BatchOptions {
	return aiornot.BatchOptions{
		MaxConcurrency: flags.concurrency,
		OnProgress:     onProgress,
		FailFast:       flags.failFast,
	}
}

// writeBatchOutput emits the summary in the selected format and signals exit
// code 1 when any item failed.
func writeBatchOutput[T any](summary *aiornot.BatchSummary[T], flags *batchFlags) error {
	var w io.Writer = os.Stdout
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return fmt.Errorf("cannot write output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch flags.format {
	case "jsonl":
		if err := summary.WriteJSONL(w); err != nil {
			return err
		}
	case "summary":
		printBatchSummary(summary.Total, summary.Succeeded, summary.Failed, summary.SuccessRate(), isTerminal(os.Stdout))
	case "quiet":
		// Exit code only.
	default:
		return fmt.Errorf("unknown format %q (expected jsonl, summary or quiet)", flags.format)
	}

	if summary.Failed > 0 {
		return errSilentExit
	}
	return nil
}

func printBatchSummary(total, succeeded, failed int, rate float64, useColor bool) {
	succeededText := colorize(fmt.Sprintf("%d", succeeded), colorGreen, useColor)
	failedText := fmt.Sprintf("%d", failed)
	if failed > 0 {
		failedText = colorize(failedText, colorRed, useColor)
	}
	fmt.Printf("Processed %d files: %s succeeded, %s failed (%.1f%% success rate)\n",
		total, succeededText, failedText, rate*100)
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process multiple files in batch mode",
		Long: "Process multiple files in batch mode.\n\n" +
			"Supports three input modes:\n" +
			"  - File arguments: aiornot batch image file1.jpg file2.png\n" +
			"  - Directory:      aiornot batch image --dir ./images\n" +
			"  - CSV file:       aiornot batch image --csv files.csv --key file_path",
	}
	cmd.AddCommand(
		newBatchImageCmd(),
		newBatchVideoCmd(),
		newBatchVoiceCmd(),
		newBatchMusicCmd(),
		newBatchTextCmd(),
	)
	return cmd
}

func newBatchImageCmd() *cobra.Command {
	var (
		flags     batchFlags
		only      []string
		excluding []string
	)
	cmd := &cobra.Command{
		Use:   "image [FILES...]",
		Short: "Batch process images for AI-generated content detection",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectInputs(args, &flags, aiornot.ImageExtensions)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no files found to process")
			}

			onlyTypes, err := imageTypes(only)
			if err != nil {
				return err
			}
			excludingTypes, err := imageTypes(excluding)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			onProgress, onDone := progressFuncs(&flags)
			summary, err := client.ImageReportBatch(cmd.Context(), aiornot.FileItems(files), &aiornot.ImageBatchOptions{
				BatchOptions: batchOptions(&flags, onProgress),
				Only:         onlyTypes,
				Excluding:    excludingTypes,
			})
			onDone()
			if err != nil {
				return err
			}
			return writeBatchOutput(summary, &flags)
		},
	}
	addBatchInputFlags(cmd, &flags)
	addBatchOutputFlags(cmd, &flags)
	cmd.Flags().StringSliceVar(&only, "only", nil, "Only run these analysis types")
	cmd.Flags().StringSliceVar(&excluding, "excluding", nil, "Exclude these analysis types")
	return cmd
}

func newBatchVideoCmd() *cobra.Command {
	var (
		flags     batchFlags
		only      []string
		excluding []string
	)
	cmd := &cobra.Command{
		Use:   "video [FILES...]",
		Short: "Batch process videos for AI-generated content detection",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectInputs(args, &flags, aiornot.VideoExtensions)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no files found to process")
			}

			onlyTypes, err := videoTypes(only)
			if err != nil {
				return err
			}
			excludingTypes, err := videoTypes(excluding)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			onProgress, onDone := progressFuncs(&flags)
			summary, err := client.VideoReportBatch(cmd.Context(), aiornot.FileItems(files), &aiornot.VideoBatchOptions{
				BatchOptions: batchOptions(&flags, onProgress),
				Only:         onlyTypes,
				Excluding:    excludingTypes,
			})
			onDone()
			if err != nil {
				return err
			}
			return writeBatchOutput(summary, &flags)
		},
	}
	addBatchInputFlags(cmd, &flags)
	addBatchOutputFlags(cmd, &flags)
	cmd.Flags().StringSliceVar(&only, "only", nil, "Only run these analysis types")
	cmd.Flags().StringSliceVar(&excluding, "excluding", nil, "Exclude these analysis types")
	return cmd
}

func newBatchVoiceCmd() *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "voice [FILES...]",
		Short: "Batch process voice/speech audio files for AI detection",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectInputs(args, &flags, aiornot.AudioExtensions)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no files found to process")
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			onProgress, onDone := progressFuncs(&flags)
			summary, err := client.VoiceReportBatch(cmd.Context(), aiornot.FileItems(files), &aiornot.AudioBatchOptions{
				BatchOptions: batchOptions(&flags, onProgress),
			})
			onDone()
			if err != nil {
				return err
			}
			return writeBatchOutput(summary, &flags)
		},
	}
	addBatchInputFlags(cmd, &flags)
	addBatchOutputFlags(cmd, &flags)
	return cmd
}

func newBatchMusicCmd() *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "music [FILES...]",
		Short: "Batch process music audio files for AI detection",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectInputs(args, &flags, aiornot.AudioExtensions)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no files found to process")
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			onProgress, onDone := progressFuncs(&flags)
			summary, err := client.MusicReportBatch(cmd.Context(), aiornot.FileItems(files), &aiornot.AudioBatchOptions{
				BatchOptions: batchOptions(&flags, onProgress),
			})
			onDone()
			if err != nil {
				return err
			}
			return writeBatchOutput(summary, &flags)
		},
	}
	addBatchInputFlags(cmd, &flags)
	addBatchOutputFlags(cmd, &flags)
	return cmd
}

func newBatchTextCmd() *cobra.Command {
	var (
		flags       batchFlags
		annotations bool
	)
	cmd := &cobra.Command{
		Use:   "text [FILES...]",
		Short: "Batch process text files for AI detection",
		Long: "Batch process text files for AI detection.\n\n" +
			"Unlike other batch commands, this reads text content from files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && flags.csvPath != "" {
				return errors.New("multiple input sources specified: use only one of files, --csv")
			}
			var files []string
			if flags.csvPath != "" {
				var err error
				files, err = aiornot.CollectCSV(flags.csvPath, aiornot.CSVOptions{Key: flags.csvKey, BaseDir: flags.baseDir})
				if err != nil {
					return err
				}
			} else {
				files = args
			}
			if len(files) == 0 {
				return errors.New("no input specified: provide files or --csv")
			}

			// Read text content up front; unreadable files are skipped with a
			// warning so one bad path doesn't sink the whole batch.
			var texts []string
			var fileMap []string
			for _, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", path, err)
					continue
				}
				texts = append(texts, string(data))
				fileMap = append(fileMap, path)
			}
			if len(texts) == 0 {
				return errors.New("no text content could be read from files")
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			onProgress, onDone := progressFuncs(&flags)
			summary, err := client.TextReportBatch(cmd.Context(), texts, &aiornot.TextBatchOptions{
				BatchOptions:       batchOptions(&flags, onProgress),
				IncludeAnnotations: annotations,
			})
			onDone()
			if err != nil {
				return err
			}

			// Show the originating file path instead of raw text content.
			for i := range summary.Results {
				if i < len(fileMap) {
					summary.Results[i].Input = fileMap[i]
				}
			}

			return writeBatchOutput(summary, &flags)
		},
	}
	addBatchCSVFlags(cmd, &flags)
	addBatchOutputFlags(cmd, &flags)
	cmd.Flags().BoolVarP(&annotations, "annotations", "a", false, "Include block-level annotations")
	return cmd
}
