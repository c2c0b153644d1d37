package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aiornot/gosdk"
)

const (
	colorRed    = "\033[91m"
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorCyan   = "\033[96m"
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
)

const rule = 60

// formatFlags are the output flags shared by the single-item commands.
type formatFlags struct {
	format  string
	quiet   bool
	color   bool
	noColor bool
}

func (f *formatFlags) useColor() bool {
	if f.color {
		return true
	}
	if f.noColor {
		return false
	}
	return isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func colorize(text, color string, useColor bool) string {
	if useColor {
		return color + text + colorReset
	}
	return text
}

func verdictColor(verdict aiornot.Verdict) string {
	switch verdict {
	case aiornot.VerdictAI:
		return colorRed
	case aiornot.VerdictHuman:
		return colorGreen
	default:
		return colorYellow
	}
}

func formatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printMinimal(verdict aiornot.Verdict, confidence float64) {
	fmt.Printf("%s %.4f\n", verdict, confidence)
}

func printQuiet(verdict aiornot.Verdict) {
	fmt.Println(verdict)
}

func hr(c byte) string {
	return strings.Repeat(string(c), rule)
}

func printImageTable(resp *aiornot.ImageReportResponse, useColor bool) {
	report := resp.Report
	verdict := resp.Verdict()

	fmt.Println(hr('='))
	fmt.Printf("  Image Analysis: %s\n", resp.ID)
	fmt.Println(hr('='))
	fmt.Printf("  Verdict:      %s\n", colorize(strings.ToUpper(verdict.String()), verdictColor(verdict), useColor))
	fmt.Printf("  Confidence:   %s\n", formatConfidence(resp.Confidence()))

	if report.AIGenerated != nil && report.AIGenerated.Generator != nil {
		name, pred := report.AIGenerated.Generator.Top()
		if pred.IsDetected {
			fmt.Printf("  Generator:    %s (%s)\n", name, formatConfidence(pred.Confidence))
		}
	}

	fmt.Println(hr('-'))

	if report.Deepfake != nil {
		status := colorize("Not detected", colorGreen, useColor)
		if report.Deepfake.IsDetected {
			status = colorize("DETECTED", colorRed, useColor)
		}
		fmt.Printf("  Deepfake:     %s\n", status)
	}
	if report.NSFW != nil {
		status := colorize("Not detected", colorGreen, useColor)
		if report.NSFW.IsDetected {
			status = colorize("DETECTED", colorRed, useColor)
		}
		fmt.Printf("  NSFW:         %s\n", status)
	}
	if report.Quality != nil {
		status := colorize("Low", colorYellow, useColor)
		if report.Quality.IsDetected {
			status = colorize("High", colorGreen, useColor)
		}
		fmt.Printf("  Quality:      %s\n", status)
	}

	fmt.Println(hr('='))
}

func printVideoTable(resp *aiornot.VideoReportResponse, useColor bool) {
	report := resp.Report

	fmt.Println(hr('='))
	fmt.Printf("  Video Analysis: %s\n", resp.ID)
	fmt.Println(hr('='))

	printDetection := func(label string, pred aiornot.Prediction) {
		verdict, color := "Human", colorGreen
		if pred.IsDetected {
			verdict, color = "AI", colorRed
		}
		fmt.Printf("  %-13s %s (%s)\n", label+":", colorize(verdict, color, useColor), formatConfidence(pred.Confidence))
	}

	printDetection("Video", report.AIVideo)
	if report.AIVoice != nil {
		printDetection("Voice", *report.AIVoice)
	}
	if report.AIMusic != nil {
		printDetection("Music", *report.AIMusic)
	}
	if report.DeepfakeVideo != nil {
		verdict, color := "Not detected", colorGreen
		if report.DeepfakeVideo.IsDetected {
			verdict, color = "DETECTED", colorRed
		}
		fmt.Printf("  Deepfake:     %s (%s)\n", colorize(verdict, color, useColor), formatConfidence(report.DeepfakeVideo.Confidence))
	}

	fmt.Println(hr('-'))
	fmt.Printf("  Duration:     %ds\n", report.Meta.Duration)
	fmt.Println(hr('='))
}

func printAudioTable(id string, report aiornot.AudioReport, label string, useColor bool) {
	fmt.Println(hr('='))
	fmt.Printf("  %s Analysis: %s\n", label, id)
	fmt.Println(hr('='))
	fmt.Printf("  Verdict:      %s\n", colorize(strings.ToUpper(report.Verdict.String()), verdictColor(report.Verdict), useColor))
	fmt.Printf("  Confidence:   %s\n", formatConfidence(report.Confidence))
	fmt.Println(hr('-'))
	fmt.Printf("  Duration:     %ds\n", report.Duration)
	fmt.Println(hr('='))
}

func printTextTable(resp *aiornot.TextReportResponse, useColor bool) {
	verdict := resp.Verdict()

	fmt.Println(hr('='))
	fmt.Printf("  Text Analysis: %s\n", resp.ID)
	fmt.Println(hr('='))
	fmt.Printf("  Verdict:      %s\n", colorize(strings.ToUpper(verdict.String()), verdictColor(verdict), useColor))
	fmt.Printf("  Confidence:   %s\n", formatConfidence(resp.Confidence()))
	fmt.Println(hr('-'))
	fmt.Printf("  Words:        %d\n", resp.Metadata.WordCount)
	fmt.Printf("  Characters:   %d\n", resp.Metadata.CharacterCount)

	if annotations := resp.Annotations(); len(annotations) > 0 {
		fmt.Println(hr('-'))
		fmt.Println("  Annotations:")
		shown := annotations
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, a := range shown {
			text := a.Text
			if len(text) > 50 {
				text = text[:50] + "..."
			}
			fmt.Printf("    [%s] %s\n", formatConfidence(a.Confidence), text)
		}
		if len(annotations) > 5 {
			fmt.Printf("    ... and %d more\n", len(annotations)-5)
		}
	}

	fmt.Println(hr('='))
}
