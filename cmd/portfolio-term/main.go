// Command portfolio-term is a terminal-style developer portfolio: typed
// commands print portfolio sections, free-form questions go to an AI layer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/logging"
	"github.com/nhle/portfolio-term/internal/model"
)

var (
	configPath string
	verbose    bool

	cfg    *model.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-term",
	Short: "Interactive terminal portfolio",
	Long: `portfolio-term renders a developer portfolio as a shell session.

Type commands such as 'help', 'skills' or 'cat about.txt', or ask a
question in plain English and the AI layer answers it.

Run without arguments to start the interactive terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = model.LoadConfig(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Display.LogFile, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("config loaded", zap.String("path", configPath), zap.String("source", cfg.Data.Source))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug records to the log file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
