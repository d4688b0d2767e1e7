package cli

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mgpai22/filmcrew/internal/crew"
	"github.com/mgpai22/filmcrew/internal/subtitle"
	"github.com/spf13/cobra"
)

var srtCmd = &cobra.Command{
	Use:   "srt",
	Short: "Validate and build SRT subtitle files",
}

var srtValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check that a file is structurally valid SRT",
	Long: `Check the structure of an SRT file: sequential indices starting at 1,
a "start --> end" line after each index, and a text body.

With --strict the timestamps are also parsed and every entry is checked for
an end after its start and for overlap with the previous entry.

Examples:
  filmcrew srt validate files/20240309_140507_Night_Shift/narration.srt
  filmcrew srt validate subs.srt --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runSRTValidate,
}

var srtBuildCmd = &cobra.Command{
	Use:   "build [units.json]",
	Short: "Build narration.srt from timed narration units",
	Long: `Build an SRT file from a JSON array of narration units:

  [{"duration": 4, "text": "The city sleeps."}, ...]

Unit N starts at (N-1) * block-seconds and is shown for its duration. The
result is validated and written to <dir>/narration.srt.

Examples:
  filmcrew srt build narration.json --dir out
  filmcrew srt build narration.json --dir out --block-seconds 4`,
	Args: cobra.ExactArgs(1),
	RunE: runSRTBuild,
}

var srtNormalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Rewrite an SRT file in canonical form",
	Long: `Read an SRT file leniently (CRLF line endings, a byte order mark, loose
spacing around the arrow, out of order indices) and write it back with
entries renumbered from 1 and timestamps in HH:MM:SS,mmm form.

Without --output the result is printed to stdout.

Examples:
  filmcrew srt normalize downloaded.srt
  filmcrew srt normalize downloaded.srt -o clean.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runSRTNormalize,
}

func init() {
	rootCmd.AddCommand(srtCmd)
	srtCmd.AddCommand(srtValidateCmd)
	srtCmd.AddCommand(srtBuildCmd)
	srtCmd.AddCommand(srtNormalizeCmd)

	srtNormalizeCmd.Flags().
		StringP("output", "o", "", "Write the result to this file instead of stdout")

	srtValidateCmd.Flags().
		Bool("strict", false, "Also parse timestamps and check entry timing")

	srtBuildCmd.Flags().
		String("dir", "", "Directory to write narration.srt into")
	srtBuildCmd.Flags().
		Float64("block-seconds", 5, "Seconds reserved for each unit")
	srtBuildCmd.Flags().
		Int("max-chars", subtitle.DefaultNarrationOptions().MaxCharsPerLine, "Wrap single lines longer than this")
	_ = srtBuildCmd.MarkFlagRequired("dir")
}

func runSRTValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	strict, _ := cmd.Flags().GetBool("strict")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	result := subtitle.Validate(string(data))
	if !result.Valid {
		return fmt.Errorf("%s: %s", path, result.Message)
	}

	if !strict {
		fmt.Printf("%s: %s\n", path, result.Message)
		return nil
	}

	sub, err := subtitle.ParseSRT(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	issues := subtitle.CheckTiming(sub)
	if len(issues) == 0 {
		fmt.Printf("%s: %s (%d entries, timing ok)\n", path, result.Message, len(sub.Entries))
		return nil
	}

	fmt.Println(renderTable(
		[]string{"Entry", "Start", "End", "Problem"},
		timingRows(issues),
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
	return fmt.Errorf("%s: %d timing issue(s)", path, len(issues))
}

func timingRows(issues []subtitle.TimingIssue) [][]string {
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{
			strconv.Itoa(issue.Index),
			formatTime(issue.Start),
			formatTime(issue.End),
			issue.Reason,
		})
	}
	return rows
}

func formatTime(d time.Duration) string {
	ts, err := subtitle.FormatTimestamp(d.Seconds())
	if err != nil {
		return d.String()
	}
	return ts
}

func runSRTBuild(cmd *cobra.Command, args []string) error {
	path := args[0]
	dir, _ := cmd.Flags().GetString("dir")
	blockSeconds, _ := cmd.Flags().GetFloat64("block-seconds")
	maxChars, _ := cmd.Flags().GetInt("max-chars")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	units, err := crew.DecodeNarration(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	content, err := subtitle.BuildNarration(units, subtitle.NarrationOptions{
		BlockSeconds:    blockSeconds,
		MaxCharsPerLine: maxChars,
	})
	if err != nil {
		return err
	}

	result := subtitle.SaveSRT(dir, content)
	if !result.OK {
		return result.Err
	}

	logger.Debugw("Built narration subtitles", "units", len(units), "path", result.Path)
	fmt.Println(result.Message)
	return nil
}

func runSRTNormalize(cmd *cobra.Command, args []string) error {
	path := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content, err := normalizeSRT(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if outputPath == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	logger.Infow("Normalized subtitles", "input", path, "output", outputPath)
	return nil
}

// parses leniently and re-serializes, refusing output that would not validate
func normalizeSRT(data []byte) (string, error) {
	sub, err := subtitle.ParseSRT(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if len(sub.Entries) == 0 {
		return "", fmt.Errorf("no subtitle entries")
	}

	content := sub.SRT()
	if err := subtitle.ValidateErr(content); err != nil {
		return "", err
	}
	return content, nil
}
