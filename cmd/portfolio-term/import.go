package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/portfolio"
)

var (
	importDriver string
	importDSN    string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a YAML or JSON portfolio into the SQL store",
	Long: `Reads a portfolio document and replaces the contents of the SQL store
with it. The driver and DSN default to the data section of the config.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDriver, "driver", "", "Database driver: sqlite or pgx (default from config)")
	importCmd.Flags().StringVar(&importDSN, "dsn", "", "Database path or URL (default from config)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := portfolio.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", args[0], err)
	}

	driver := importDriver
	if driver == "" {
		driver = cfg.Data.Driver
	}
	dsn := importDSN
	if dsn == "" {
		dsn = cfg.Data.DSN
	}
	if dsn == "" {
		return fmt.Errorf("no DSN: pass --dsn or set data.dsn")
	}

	store, err := portfolio.OpenStore(driver, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Import(cmd.Context(), data); err != nil {
		return err
	}

	logger.Info("portfolio imported", zap.String("file", args[0]), zap.String("driver", driver))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%d projects, %d roles) into %s store\n",
		data.Personal.Name, len(data.Projects), len(data.Experience), driver)
	return nil
}
