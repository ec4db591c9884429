package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/credential"
	"github.com/nhle/portfolio-term/internal/model"
	configview "github.com/nhle/portfolio-term/internal/ui/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Edit the configuration interactively",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	s := configview.NewSetup(cfg)
	if err := s.Form().Run(); err != nil {
		return fmt.Errorf("setup form: %w", err)
	}

	updated, secrets, err := s.Apply()
	if err != nil {
		return err
	}
	if err := model.SaveConfig(configPath, updated); err != nil {
		return err
	}

	if secrets.AIToken != "" {
		if err := credential.Set(credential.KeyAIToken, secrets.AIToken); err != nil {
			return err
		}
	}
	if secrets.GeminiKey != "" {
		if err := credential.Set(credential.KeyGeminiAPIKey, secrets.GeminiKey); err != nil {
			return err
		}
	}

	logger.Info("config saved", zap.String("path", configPath))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", configPath)
	return nil
}
