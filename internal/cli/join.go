package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mgpai22/filmcrew/internal/video"
	"github.com/spf13/cobra"
)

var joinCmd = &cobra.Command{
	Use:   "join [video_file] [video_file]...",
	Short: "Join video clips into a single file",
	Long: `Join two or more video clips, in the order given, into one file using
the ffmpeg concat demuxer.

Streams are copied by default, which requires clips with matching codecs.
Use --reencode for clips that differ.

Examples:
  filmcrew join scene1.mp4 scene2.mp4 scene3.mp4
  filmcrew join a.mp4 b.mov -o movie.mp4 --reencode`,
	Args: cobra.MinimumNArgs(2),
	RunE: runJoin,
}

func init() {
	rootCmd.AddCommand(joinCmd)

	joinCmd.Flags().
		StringP("output", "o", "", "Output file path (default joined_video_<timestamp>.mp4)")
	joinCmd.Flags().
		Bool("reencode", false, "Re-encode with libx264/aac instead of copying streams")
}

func runJoin(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	reencode, _ := cmd.Flags().GetBool("reencode")

	if outputPath == "" {
		outputPath = video.DefaultOutputName(time.Now())
	}

	logger.Infow("Joining videos",
		"inputs", len(args),
		"output", outputPath,
		"reencode", reencode,
	)

	tempDir, err := os.MkdirTemp("", "filmcrew-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	processor := video.NewProcessor(tempDir)
	if err := processor.Concat(
		cmd.Context(),
		args,
		outputPath,
		video.ConcatOptions{Reencode: reencode},
	); err != nil {
		return joinFailure(err, reencode)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Videos joined successfully: %s\n", absOutput)
	fmt.Printf("  Clips: %d\n", len(args))

	return nil
}

// stream copy fails on clips with differing codecs, so point at --reencode
func joinFailure(err error, reencode bool) error {
	if reencode || errors.Is(err, video.ErrTooFewInputs) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w (clips with different codecs or sizes need --reencode)", err)
}
