package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/id"
	"github.com/tallybook-dev/tallybook/internal/journal"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func newPostCommand() *cobra.Command {
	var bookDir string
	var dateStr string
	var description string
	var debits []string
	var credits []string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Record a manual journal entry",
		Long: `Record a manual journal entry. Each --debit and --credit flag takes
an account code and amount, e.g. --debit 1101=200 --credit 4101=200.
The entry must balance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := openBook(bookDir)
			if err != nil {
				return err
			}

			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			entry, err := buildEntry(l, date, description, debits, credits)
			if err != nil {
				return err
			}

			if verrs := journal.ValidateEntry(entry, l.Accounts); len(verrs) > 0 {
				msgs := make([]string, len(verrs))
				for i, ve := range verrs {
					msgs[i] = ve.Error()
				}
				return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
			}

			if err := l.Post(entry); err != nil {
				return err
			}
			if err := saveBook(bookDir, l); err != nil {
				return err
			}

			fmt.Printf("Posted entry %s\n", entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&bookDir, "book", ".", "book directory")
	cmd.Flags().StringVar(&dateStr, "date", "", "entry date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "desc", "", "entry description")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "debit movement as CODE=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "credit movement as CODE=AMOUNT (repeatable)")

	return cmd
}

func buildEntry(l *ledger.Ledger, date time.Time, description string, debits, credits []string) (model.JournalEntry, error) {
	entry := model.JournalEntry{
		ID:          id.New("JRN"),
		Date:        date,
		Description: description,
	}

	add := func(movements []string, debit bool) error {
		for _, mv := range movements {
			code, amount, err := parseMovement(mv)
			if err != nil {
				return err
			}
			acct, ok := l.Accounts.ByCode(code)
			if !ok {
				return fmt.Errorf("no account with code %q in chart", code)
			}
			item := model.JournalItem{AccountID: acct.ID}
			if debit {
				item.Debit = amount
			} else {
				item.Credit = amount
			}
			entry.Items = append(entry.Items, item)
		}
		return nil
	}

	if err := add(debits, true); err != nil {
		return model.JournalEntry{}, err
	}
	if err := add(credits, false); err != nil {
		return model.JournalEntry{}, err
	}
	return entry, nil
}

func parseMovement(mv string) (code string, amount decimal.Decimal, err error) {
	code, amountStr, found := strings.Cut(mv, "=")
	if !found || code == "" {
		return "", decimal.Zero, fmt.Errorf("invalid movement %q, expected CODE=AMOUNT", mv)
	}
	amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("invalid amount in %q: %w", mv, err)
	}
	return code, amount, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return date, nil
}
