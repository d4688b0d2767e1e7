package config

import (
	"errors"
	"fmt"

	"github.com/mgpai22/filmcrew/internal/textgen"
)

// Validate ensures the configuration is usable. A missing API key is not an
// error here; only commands that call a provider need one.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateMovie(); err != nil {
		return err
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if _, err := textgen.ParseProvider(c.LLM.Provider); err != nil {
		return fmt.Errorf("llm.provider: %w", err)
	}
	if c.LLM.MaxTokens < 0 {
		return errors.New("llm.max_tokens must not be negative")
	}
	return nil
}

func (c *Config) validateMovie() error {
	if c.Movie.Scenes <= 0 {
		return fmt.Errorf("movie.scenes must be positive, got %d", c.Movie.Scenes)
	}
	if c.Movie.SceneSeconds <= 0 {
		return fmt.Errorf("movie.scene_seconds must be positive, got %d", c.Movie.SceneSeconds)
	}
	if c.Movie.MaxCharacters <= 0 {
		return fmt.Errorf("movie.max_characters must be positive, got %d", c.Movie.MaxCharacters)
	}
	return nil
}
