package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/mgpai22/filmcrew/internal/textgen"
)

//go:embed sample_config.toml
var sampleConfig string

// LLM contains text generation settings shared by every pipeline task.
type LLM struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	MaxTokens int    `toml:"max_tokens"`
}

// Movie contains the shape of the generated short film.
type Movie struct {
	Scenes        int `toml:"scenes"`
	SceneSeconds  int `toml:"scene_seconds"`
	MaxCharacters int `toml:"max_characters"`
}

// Paths contains output locations.
type Paths struct {
	OutputDir string `toml:"output_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Verbose bool `toml:"verbose"`
}

// Config is the complete filmcrew configuration.
type Config struct {
	LLM     LLM     `toml:"llm"`
	Movie   Movie   `toml:"movie"`
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/filmcrew/config.toml")
}

// Load locates, parses, and validates a configuration file, then applies
// environment overrides. Variables from a .env file in the working directory
// are loaded first and never replace variables already set.
func Load(path string) (*Config, string, bool, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, "", false, err
	}

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs("filmcrew.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// normalize applies environment overrides, resolves the API key for the
// selected provider, and expands paths.
func (c *Config) normalize() error {
	if v := strings.TrimSpace(os.Getenv("FILMCREW_PROVIDER")); v != "" {
		c.LLM.Provider = v
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))

	if v := strings.TrimSpace(os.Getenv("FILMCREW_MODEL")); v != "" {
		c.LLM.Model = v
	} else if c.LLM.Model == "" {
		c.LLM.Model = ModelFromEnv(c.LLM.Provider)
	}

	if c.LLM.APIKey == "" {
		c.LLM.APIKey = strings.TrimSpace(os.Getenv(textgen.Provider(c.LLM.Provider).APIKeyEnv()))
	}

	if v := strings.TrimSpace(os.Getenv("FILMCREW_OUTPUT_DIR")); v != "" {
		c.Paths.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv("FILMCREW_SCENES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FILMCREW_SCENES: %w", err)
		}
		c.Movie.Scenes = n
	}

	expanded, err := expandPath(c.Paths.OutputDir)
	if err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	c.Paths.OutputDir = expanded

	return nil
}

// ModelFromEnv returns the model the environment selects for provider:
// FILMCREW_MODEL, then OPENAI_MODEL_NAME for openai. Empty means the
// provider default.
func ModelFromEnv(provider string) string {
	if v := strings.TrimSpace(os.Getenv("FILMCREW_MODEL")); v != "" {
		return v
	}
	if provider == string(textgen.ProviderOpenAI) {
		return strings.TrimSpace(os.Getenv("OPENAI_MODEL_NAME"))
	}
	return ""
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue, "~"))
	}
	return filepath.Clean(pathValue), nil
}

// CreateSample writes the sample configuration to path. It refuses to replace
// an existing file.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// TextGenProvider returns the configured provider.
func (c *Config) TextGenProvider() textgen.Provider {
	return textgen.Provider(c.LLM.Provider)
}

// TextGenOptions returns the generator options for the configured provider.
func (c *Config) TextGenOptions() textgen.Options {
	return textgen.Options{
		Model:     c.LLM.Model,
		MaxTokens: c.LLM.MaxTokens,
	}
}
