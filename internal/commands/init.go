package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/accounts"
	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/inventory"
	"github.com/tallybook-dev/tallybook/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var name string
	var currency string
	var language string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, currency, language)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "SAR", "bookkeeping currency (SAR or EGP)")
	cmd.Flags().StringVar(&language, "language", "ar", "report language (ar or en)")

	return cmd
}

func runInit(dir, name, currency, language string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(name)
	cfg.Business.Currency = currency
	cfg.Display.Language = language
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	l := ledger.New(accounts.NewService(accounts.DefaultChart()), inventory.NewService(nil))
	l.Settings = cfg.Settings()
	if err := saveBook(dir, l); err != nil {
		return fmt.Errorf("writing book: %w", err)
	}

	fmt.Printf("Initialized book for %s at %s\n", name, dir)
	return nil
}
