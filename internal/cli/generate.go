package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/filmcrew/internal/config"
	"github.com/mgpai22/filmcrew/internal/crew"
	"github.com/mgpai22/filmcrew/internal/textgen"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the film crew and write a new short movie",
	Long: `Run the full film crew: story, character prompts, scene prompts, music
prompt, narration, and title.

Each run is written to <output-dir>/<YYYYMMDD_HHMMSS>_<title>/ with one text
file per agent and a narration.srt built from the narrator's timed lines.
The SRT file is only written when it passes validation.

Examples:
  filmcrew generate
  filmcrew generate --provider openai --model gpt-5-mini
  filmcrew generate --scenes 8 --scene-seconds 4 --output-dir movies`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().
		String("provider", "", "Text generation provider (gemini, openai, anthropic)")
	cmd.Flags().
		String("model", "", "Model to use (default depends on provider)")
	cmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY)")
	cmd.Flags().
		String("output-dir", "", "Directory that receives run directories (default files)")
	cmd.Flags().
		Int("scenes", 0, "Number of scenes (default 5)")
	cmd.Flags().
		Int("scene-seconds", 0, "Maximum seconds per scene (default 5)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyGenerateFlags(cmd, cfg); err != nil {
		return err
	}

	provider := cfg.TextGenProvider()
	gen, err := textgen.Factory(cmd.Context(), provider, cfg.LLM.APIKey, cfg.TextGenOptions())
	if err != nil {
		return fmt.Errorf(
			"failed to create %s generator: %w (use --api-key or set %s)",
			provider,
			err,
			provider.APIKeyEnv(),
		)
	}

	model := cfg.LLM.Model
	if model == "" {
		model = provider.DefaultModel()
	}
	logger.Infow("Starting movie generation",
		"provider", provider,
		"model", model,
		"output_dir", cfg.Paths.OutputDir,
	)

	pipeline := crew.NewPipeline(gen, crew.PipelineOptions{
		OutputDir: cfg.Paths.OutputDir,
		Movie: crew.MovieSpec{
			Scenes:        cfg.Movie.Scenes,
			SceneSeconds:  cfg.Movie.SceneSeconds,
			MaxCharacters: cfg.Movie.MaxCharacters,
		},
	}, logger)

	summary, err := pipeline.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("movie generation failed: %w", err)
	}

	absDir, _ := filepath.Abs(summary.Dir)
	fmt.Printf("Movie generated successfully: %s\n", summary.Title)
	fmt.Printf("  Run ID: %s\n", summary.RunID)
	fmt.Printf("  Directory: %s\n", absDir)
	fmt.Printf("  Files: %d\n", len(summary.Files))
	fmt.Printf("  Subtitles: %s\n", summary.Narration.Message)
	if summary.NarrationErr != nil && !summary.Narration.OK {
		fmt.Printf("  Narration units: %v\n", summary.NarrationErr)
	}

	return nil
}

// applies command flags over the loaded configuration
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("provider") {
		name, _ := flags.GetString("provider")
		provider, err := textgen.ParseProvider(name)
		if err != nil {
			return err
		}
		if string(provider) != cfg.LLM.Provider {
			cfg.LLM.Provider = string(provider)
			cfg.LLM.Model = config.ModelFromEnv(string(provider))
			cfg.LLM.APIKey = strings.TrimSpace(os.Getenv(provider.APIKeyEnv()))
		}
	}
	if flags.Changed("model") {
		cfg.LLM.Model, _ = flags.GetString("model")
	}
	if flags.Changed("api-key") {
		cfg.LLM.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("output-dir") {
		cfg.Paths.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("scenes") {
		cfg.Movie.Scenes, _ = flags.GetInt("scenes")
	}
	if flags.Changed("scene-seconds") {
		cfg.Movie.SceneSeconds, _ = flags.GetInt("scene-seconds")
	}

	return cfg.Validate()
}
