package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/app"
	"github.com/nhle/portfolio-term/internal/command"
	"github.com/nhle/portfolio-term/internal/model"
	"github.com/nhle/portfolio-term/internal/portfolio"
	"github.com/nhle/portfolio-term/internal/ui"
)

var execWidth int

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run one terminal command and print its output",
	Long: `Runs a single command against the configured portfolio and prints the
result, e.g. 'portfolio-term exec cat skills.json'. The AI layer is not
used; questions print "command not found".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().IntVar(&execWidth, "width", 80, "Wrap width of the output")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	src, err := portfolio.Open(cfg)
	if err != nil {
		return err
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	data, err := portfolio.Load(cmd.Context(), src)
	if err != nil {
		return fmt.Errorf("loading portfolio: %w", err)
	}

	line := strings.Join(args, " ")
	logger.Debug("exec", zap.String("input", line))
	return execLine(cmd.OutOrStdout(), cfg, data, line, execWidth)
}

// execLine processes one command line and writes the rendered output.
func execLine(w io.Writer, cfg *model.AppConfig, data *model.PortfolioData, line string, width int) error {
	id := command.IdentityFromConfig(cfg.Identity)
	res := command.New(id).Process(line, data, []string{strings.TrimSpace(line)})
	if res.Clear {
		return nil
	}

	r, err := ui.NewRenderer(width, app.Prompt(id), false)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, r.Output(res.Output)); err != nil {
		return err
	}
	if res.OpenURL != "" {
		_, err := fmt.Fprintln(w, res.OpenURL)
		return err
	}
	return nil
}
