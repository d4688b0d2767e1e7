package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

const (
	ffmpegPathEnv  = "FILMCREW_FFMPEG_PATH"
	ffprobePathEnv = "FILMCREW_FFPROBE_PATH"
)

// ErrNotFound is returned when ffmpeg or ffprobe cannot be located.
var ErrNotFound = errors.New("ffmpeg binaries not found")

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure locates ffmpeg and ffprobe once per process. Explicit paths from
// FILMCREW_FFMPEG_PATH and FILMCREW_FFPROBE_PATH win over PATH lookup.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = locate(os.Getenv, exec.LookPath)
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func locate(
	getenv func(string) string,
	lookPath func(string) (string, error),
) (BinaryPaths, error) {
	ffmpegPath, err := resolve("ffmpeg", getenv(ffmpegPathEnv), lookPath)
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := resolve("ffprobe", getenv(ffprobePathEnv), lookPath)
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func resolve(
	name, override string,
	lookPath func(string) (string, error),
) (string, error) {
	if override != "" {
		if !fileExists(override) {
			return "", fmt.Errorf("%w: %s points to missing file %s", ErrNotFound, envFor(name), override)
		}
		return override, nil
	}

	found, err := lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not on PATH (set %s)", ErrNotFound, name, envFor(name))
	}
	return found, nil
}

func envFor(name string) string {
	if name == "ffprobe" {
		return ffprobePathEnv
	}
	return ffmpegPathEnv
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
