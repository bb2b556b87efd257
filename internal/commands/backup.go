package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/journal"
	"github.com/tallybook-dev/tallybook/internal/snapshot"
)

func newExportCommand() *cobra.Command {
	var bookDir string
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a backup snapshot (json) or the journal (csv)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := openBook(bookDir)
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("tallybook_backup_%s.%s", time.Now().Format("2006-01-02"), format)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()

			switch format {
			case "json":
				if err := snapshot.Export(f, l, time.Now()); err != nil {
					return err
				}
			case "csv":
				if err := journal.WriteEntries(f, l.Entries()); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (json or csv)", format)
			}

			fmt.Printf("Exported %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")
	cmd.Flags().StringVar(&format, "format", "json", "export format: json (full backup) or csv (journal)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default tallybook_backup_<date>.<format>)")

	return cmd
}

func newImportCommand() *cobra.Command {
	var bookDir string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the book from a backup snapshot",
		Long: `Restore the book from a JSON backup snapshot. The snapshot is
validated in full before anything is replaced; a bad file leaves the
current book untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := openBook(bookDir)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening backup: %w", err)
			}
			defer f.Close()

			restored, err := snapshot.Import(f)
			if err != nil {
				return fmt.Errorf("backup not restored, book unchanged: %w", err)
			}

			if err := saveBook(bookDir, restored); err != nil {
				return err
			}
			cfg.ApplySettings(restored.Settings)
			if err := config.Save(filepath.Join(bookDir, configFile), cfg); err != nil {
				return err
			}

			fmt.Printf("Restored %d accounts and %d entries from %s\n",
				len(restored.Accounts.All()), restored.EntryCount(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")

	return cmd
}
