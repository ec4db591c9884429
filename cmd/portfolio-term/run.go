package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/portfolio-term/internal/app"
)

func runInteractive(cmd *cobra.Command, _ []string) error {
	deps, closer, err := app.Wire(cmd.Context(), cfg, os.Getenv, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	p := tea.NewProgram(
		app.New(deps),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal: %w", err)
	}
	return nil
}
