package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aiornot/gosdk"
)

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "json", "Output format: json, table or minimal")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only output verdict")
	cmd.Flags().BoolVar(&flags.color, "color", false, "Force colored output")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
}

func imageTypes(names []string) ([]aiornot.ImageAnalysisType, error) {
	var out []aiornot.ImageAnalysisType
	for _, name := range names {
		t := aiornot.ImageAnalysisType(name)
		valid := false
		for _, known := range aiornot.ImageAnalysisTypes() {
			if t == known {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("unknown image analysis type %q (expected one of %v)", name, aiornot.ImageAnalysisTypes())
		}
		out = append(out, t)
	}
	return out, nil
}

func videoTypes(names []string) ([]aiornot.VideoAnalysisType, error) {
	var out []aiornot.VideoAnalysisType
	for _, name := range names {
		t := aiornot.VideoAnalysisType(name)
		valid := false
		for _, known := range aiornot.VideoAnalysisTypes() {
			if t == known {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("unknown video analysis type %q (expected one of %v)", name, aiornot.VideoAnalysisTypes())
		}
		out = append(out, t)
	}
	return out, nil
}

func newImageCmd() *cobra.Command {
	var (
		flags      formatFlags
		only       []string
		excluding  []string
		externalID string
	)
	cmd := &cobra.Command{
		Use:   "image FILE",
		Short: "Analyze an image file for AI-generated content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			resp, err := client.ImageReportFile(cmd.Context(), args[0], &aiornot.ImageReportOptions{
				Only:       onlyTypes,
				Excluding:  excludingTypes,
				ExternalID: externalID,
			})
			if err != nil {
				return err
			}

			switch {
			case flags.quiet:
				printQuiet(resp.Verdict())
			case flags.format == "json":
				return printJSON(resp)
			case flags.format == "minimal":
				printMinimal(resp.Verdict(), resp.Confidence())
			default:
				printImageTable(resp, flags.useColor())
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "Only run these analysis types")
	cmd.Flags().StringSliceVar(&excluding, "excluding", nil, "Exclude these analysis types")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External tracking ID")
	addFormatFlags(cmd, &flags)
	return cmd
}

func newVideoCmd() *cobra.Command {
	var (
		flags      formatFlags
		only       []string
		excluding  []string
		externalID string
	)
	cmd := &cobra.Command{
		Use:   "video FILE",
		Short: "Analyze a video file for AI-generated content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			resp, err := client.VideoReportFile(cmd.Context(), args[0], &aiornot.VideoReportOptions{
				Only:       onlyTypes,
				Excluding:  excludingTypes,
				ExternalID: externalID,
			})
			if err != nil {
				return err
			}

			switch {
			case flags.quiet:
				printQuiet(resp.Verdict())
			case flags.format == "json":
				return printJSON(resp)
			case flags.format == "minimal":
				printMinimal(resp.Verdict(), resp.Confidence())
			default:
				printVideoTable(resp, flags.useColor())
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "Only run these analysis types")
	cmd.Flags().StringSliceVar(&excluding, "excluding", nil, "Exclude these analysis types")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External tracking ID")
	addFormatFlags(cmd, &flags)
	return cmd
}

func newVoiceCmd() *cobra.Command {
	var flags formatFlags
	cmd := &cobra.Command{
		Use:   "voice FILE",
		Short: "Analyze a voice/speech audio file for AI-generated content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.VoiceReportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			switch {
			case flags.quiet:
				printQuiet(resp.Verdict())
			case flags.format == "json":
				return printJSON(resp)
			case flags.format == "minimal":
				printMinimal(resp.Verdict(), resp.Confidence())
			default:
				printAudioTable(resp.ID, resp.Report, "Voice", flags.useColor())
			}
			return nil
		},
	}
	addFormatFlags(cmd, &flags)
	return cmd
}

func newMusicCmd() *cobra.Command {
	var flags formatFlags
	cmd := &cobra.Command{
		Use:   "music FILE",
		Short: "Analyze a music audio file for AI-generated content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.MusicReportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			switch {
			case flags.quiet:
				printQuiet(resp.Verdict())
			case flags.format == "json":
				return printJSON(resp)
			case flags.format == "minimal":
				printMinimal(resp.Verdict(), resp.Confidence())
			default:
				printAudioTable(resp.ID, resp.Report, "Music", flags.useColor())
			}
			return nil
		},
	}
	addFormatFlags(cmd, &flags)
	return cmd
}

func newTextCmd() *cobra.Command {
	var (
		flags       formatFlags
		fromFile    bool
		annotations bool
		externalID  string
	)
	cmd := &cobra.Command{
		Use:   "text SOURCE",
		Short: "Analyze text for AI-generated content",
		Long: "Analyze text for AI-generated content.\n\n" +
			"SOURCE can be the text itself or a file path (with --file).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := args[0]
			if fromFile {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("file not found: %s", args[0])
				}
				content = string(data)
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.TextReport(cmd.Context(), content, &aiornot.TextReportOptions{
				IncludeAnnotations: annotations,
				ExternalID:         externalID,
			})
			if err != nil {
				return err
			}

			switch {
			case flags.quiet:
				printQuiet(resp.Verdict())
			case flags.format == "json":
				return printJSON(resp)
			case flags.format == "minimal":
				printMinimal(resp.Verdict(), resp.Confidence())
			default:
				printTextTable(resp, flags.useColor())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&fromFile, "file", "f", false, "Read text from a file")
	cmd.Flags().BoolVarP(&annotations, "annotations", "a", false, "Include block-level annotations")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External tracking ID")
	addFormatFlags(cmd, &flags)
	return cmd
}
