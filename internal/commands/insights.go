package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/tallybook-dev/tallybook/internal/insights"
)

func newInsightsCommand() *cobra.Command {
	var bookDir string

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Ask the advisory service for observations about the books",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := openBook(bookDir)
			if err != nil {
				return err
			}

			// Credentials may live in a .env next to the book.
			_ = godotenv.Load()

			ctx := cmd.Context()
			client, err := genai.NewClient(ctx, nil)
			if err != nil {
				// Advisory failures are never fatal.
				client = nil
			}

			svc := insights.NewService(client, cfg.Display.Language)
			for _, ins := range svc.Analyze(ctx, l.Accounts.All(), l.Entries()) {
				fmt.Printf("[%s] %s\n    %s\n", ins.Type, ins.Title, ins.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")

	return cmd
}
