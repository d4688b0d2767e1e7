package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgpai22/filmcrew/internal/config"
	"github.com/mgpai22/filmcrew/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "filmcrew",
	Short: "AI film crew that writes short movies and their subtitles",
	Long: `Filmcrew runs a crew of AI agents that write a short movie script,
design its characters, scenes, and music, narrate it, and title it.

Every run is stored in its own directory. The narration is turned into
an SRT subtitle file that is only written when it passes validation.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Configuration file path (default ./filmcrew.toml or ~/.config/filmcrew/config.toml)")
}

// loads the configuration and upgrades the logger when the file asks for
// verbose output
func loadConfig() (*config.Config, error) {
	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Logging.Verbose && !verbose {
		verbose = true
		logger = logging.NewLogger(true)
	}

	if exists {
		logger.Debugw("Loaded config", "path", resolved)
	} else {
		logger.Debugw("No config file found, using defaults", "path", resolved)
	}

	return cfg, nil
}
