package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/currency"
)

func newAccountsCommand() *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts operations",
	}
	accountsCmd.AddCommand(newAccountsListCommand())
	return accountsCmd
}

func newAccountsListCommand() *cobra.Command {
	var bookDir string
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts with current balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := openBook(bookDir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tTYPE\tBALANCE")
			for _, a := range l.Accounts.Search(search) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Code, a.Name, a.Type, currency.Format(a.Balance, cfg.Business.Currency))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")
	cmd.Flags().StringVar(&search, "search", "", "filter by code, name or type")

	return cmd
}
