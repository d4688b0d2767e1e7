package cli

import (
	"fmt"
	"strconv"

	"github.com/mgpai22/filmcrew/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the filmcrew configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a sample configuration file",
	Long: `Write a commented sample configuration file. Without a path the file is
written to ~/.config/filmcrew/config.toml. An existing file is never
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			var err error
			if path, err = config.DefaultConfigPath(); err != nil {
				return err
			}
		}

		if err := config.CreateSample(path); err != nil {
			return err
		}
		fmt.Printf("Wrote sample configuration to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println(renderTable([]string{"Setting", "Value"}, configRows(cfg), nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func configRows(cfg *config.Config) [][]string {
	model := cfg.LLM.Model
	if model == "" {
		model = cfg.TextGenProvider().DefaultModel() + " (default)"
	}

	return [][]string{
		{"llm.provider", cfg.LLM.Provider},
		{"llm.model", model},
		{"llm.api_key", maskSecret(cfg.LLM.APIKey)},
		{"llm.max_tokens", strconv.Itoa(cfg.LLM.MaxTokens)},
		{"movie.scenes", strconv.Itoa(cfg.Movie.Scenes)},
		{"movie.scene_seconds", strconv.Itoa(cfg.Movie.SceneSeconds)},
		{"movie.max_characters", strconv.Itoa(cfg.Movie.MaxCharacters)},
		{"paths.output_dir", cfg.Paths.OutputDir},
		{"logging.verbose", strconv.FormatBool(cfg.Logging.Verbose)},
	}
}

// keeps the last four characters of a secret
func maskSecret(s string) string {
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 4:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}
