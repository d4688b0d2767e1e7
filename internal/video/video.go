package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/filmcrew/internal/ffmpeg"
)

const outputTimeLayout = "20060102_150405"

// ErrTooFewInputs is returned when fewer than two clips are given to Concat.
var ErrTooFewInputs = errors.New("at least 2 video files are required")

// video file information
type Info struct {
	Path     string
	Duration time.Duration
	Width    int
	Height   int
	Codec    string
	HasAudio bool
}

// defines interface for video processing operations
type Processor interface {
	// joins clips in order into one file
	Concat(ctx context.Context, inputs []string, output string, opts ConcatOptions) error

	// retrieves video file information
	GetInfo(ctx context.Context, videoPath string) (*Info, error)
}

// holds options for joining clips
type ConcatOptions struct {
	// Reencode switches from stream copy to libx264/aac, for clips whose
	// codecs or parameters differ.
	Reencode bool
}

// default implementation using ffmpeg
type DefaultProcessor struct {
	tempDir string
}

func NewProcessor(tempDir string) *DefaultProcessor {
	return &DefaultProcessor{
		tempDir: tempDir,
	}
}

// DefaultOutputName is the file name used when no output is given.
func DefaultOutputName(now time.Time) string {
	return fmt.Sprintf("joined_video_%s.mp4", now.Format(outputTimeLayout))
}

// joins clips in order with the ffmpeg concat demuxer
func (p *DefaultProcessor) Concat(
	ctx context.Context,
	inputs []string,
	output string,
	opts ConcatOptions,
) error {
	if len(inputs) < 2 {
		return ErrTooFewInputs
	}
	if output == "" {
		return errors.New("output path is required")
	}

	for _, input := range inputs {
		if _, err := os.Stat(input); os.IsNotExist(err) {
			return fmt.Errorf("video file not found: %s", input)
		}
		if _, err := p.GetInfo(ctx, input); err != nil {
			return fmt.Errorf("failed to probe %s: %w", input, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	listPath, err := writeConcatList(p.tempDir, inputs)
	if err != nil {
		return err
	}
	defer os.Remove(listPath)

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ffmpegPath, concatArgs(listPath, output, opts)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg concat failed: %w: %s", err, lastLine(stderr.String()))
	}

	return nil
}

func concatArgs(listPath, output string, opts ConcatOptions) []string {
	kwargs := ffmpeg.KwArgs{"c": "copy"}
	if opts.Reencode {
		kwargs = ffmpeg.KwArgs{
			"c:v": "libx264",
			"c:a": "aac",
		}
	}

	return ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(output, kwargs).
		OverWriteOutput().
		GetArgs()
}

// writes an ffmpeg concat list with one absolute path per line
func writeConcatList(dir string, inputs []string) (string, error) {
	file, err := os.CreateTemp(dir, "concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create concat list: %w", err)
	}
	defer file.Close()

	for _, input := range inputs {
		line, err := concatListLine(input)
		if err != nil {
			os.Remove(file.Name())
			return "", err
		}
		if _, err := file.WriteString(line); err != nil {
			os.Remove(file.Name())
			return "", fmt.Errorf("failed to write concat list: %w", err)
		}
	}

	return file.Name(), nil
}

func concatListLine(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return fmt.Sprintf("file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`)), nil
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// retrieves video file information
func (p *DefaultProcessor) GetInfo(
	ctx context.Context,
	videoPath string,
) (*Info, error) {
	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbe(videoPath, out.Bytes())
}

func parseProbe(path string, data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{Path: path}
	if probe.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	hasVideo := false
	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			if !hasVideo {
				hasVideo = true
				info.Codec = s.CodecName
				info.Width = s.Width
				info.Height = s.Height
			}
		case "audio":
			info.HasAudio = true
		}
	}
	if !hasVideo {
		return nil, errors.New("no video stream")
	}

	return info, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
