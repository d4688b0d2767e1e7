package crew

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mgpai22/filmcrew/internal/logging"
	"github.com/mgpai22/filmcrew/internal/subtitle"
	"github.com/mgpai22/filmcrew/internal/textgen"
)

// PipelineOptions configures a full movie generation run.
type PipelineOptions struct {
	OutputDir       string
	Movie           MovieSpec
	MaxCharsPerLine int

	// Now overrides the clock used to name the run directory.
	Now func() time.Time
}

// RunSummary describes what a run produced.
type RunSummary struct {
	RunID     string
	Title     string
	Dir       string
	Files     []string
	Narration subtitle.SaveResult

	// NarrationErr is why the reply could not be built into SRT from
	// narration units. The reply was then checked as SRT text as is.
	NarrationErr error
}

// Pipeline runs the crew and persists its outputs.
type Pipeline struct {
	gen    textgen.Generator
	opts   PipelineOptions
	logger *logging.Logger
}

func NewPipeline(gen textgen.Generator, opts PipelineOptions, logger *logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Movie == (MovieSpec{}) {
		opts.Movie = DefaultMovieSpec()
	}
	if opts.MaxCharsPerLine <= 0 {
		opts.MaxCharsPerLine = subtitle.DefaultNarrationOptions().MaxCharsPerLine
	}
	return &Pipeline{gen: gen, opts: opts, logger: logger}
}

// Run executes every task and writes the results into a fresh run
// directory. A narration that fails the SRT gate is reported in the
// summary and does not fail the run.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	if p.opts.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}

	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	logger.Infow("Starting film crew",
		"scenes", p.opts.Movie.Scenes,
		"scene_seconds", p.opts.Movie.SceneSeconds,
		"max_characters", p.opts.Movie.MaxCharacters,
	)

	outputs, err := New(p.gen, DefaultTasks(p.opts.Movie), logger).Kickoff(ctx)
	if err != nil {
		return nil, err
	}

	title := titleFrom(outputs)
	dir := RunDir(p.opts.OutputDir, p.opts.Now(), title)
	saver := NewResultSaver(dir)
	summary := &RunSummary{RunID: runID, Title: title, Dir: dir}

	var narrationReply string
	for _, out := range outputs {
		path, err := saver.Save(out.Role, out.Raw)
		if err != nil {
			return summary, fmt.Errorf("failed to save %s output: %w", out.Task, err)
		}
		summary.Files = append(summary.Files, path)
		logger.Debugw("Saved task output", "task", out.Task, "path", path)

		if out.Task == TaskNarration {
			narrationReply = out.Raw
		}
	}

	srt, err := NarrationSRT(narrationReply, subtitle.NarrationOptions{
		BlockSeconds:    float64(p.opts.Movie.SceneSeconds),
		MaxCharsPerLine: p.opts.MaxCharsPerLine,
	})
	if err != nil {
		summary.NarrationErr = err
		logger.Warnw("Narration units unusable, checking reply as SRT", "error", err)
	}

	summary.Narration = subtitle.SaveSRT(dir, srt)
	if summary.Narration.OK {
		summary.Files = append(summary.Files, summary.Narration.Path)
		logger.Infow("Saved narration subtitles", "path", summary.Narration.Path)
	} else {
		logger.Warnw("Narration subtitles rejected", "reason", summary.Narration.Message)
	}

	logger.Infow("Film crew finished", "title", title, "dir", dir, "files", len(summary.Files))
	return summary, nil
}

func titleFrom(outputs []TaskOutput) string {
	for _, out := range outputs {
		if out.Task == TaskTitle {
			if title := stripFence(textgen.CleanResponse(out.Raw)); title != "" {
				return title
			}
		}
	}
	return untitled
}
