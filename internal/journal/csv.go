package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Header is the CSV header for a journal export. One row per item; the
// entry fields repeat on every row of the same entry.
const Header = "entry_id,date,description,account_id,debit,credit"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colDesc    = 2
	colAcctID  = 3
	colDebit   = 4
	colCredit  = 5
)

// WriteEntries writes entries as CSV rows (including header), one row
// per journal item.
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, entry := range entries {
		for _, item := range entry.Items {
			if err := cw.Write(marshalRow(entry, item)); err != nil {
				return fmt.Errorf("writing entry %s: %w", entry.ID, err)
			}
		}
	}
	return cw.Error()
}

// ReadEntries reads a journal CSV back into entries, grouping consecutive
// rows that share an entry ID.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.JournalEntry
	for i, rec := range records[1:] {
		entryID := rec[colEntryID]

		date, err := time.Parse(dateFormat, rec[colDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[colDate], err)
		}

		item, err := unmarshalItem(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		if n := len(entries); n > 0 && entries[n-1].ID == entryID {
			entries[n-1].Items = append(entries[n-1].Items, item)
			continue
		}
		entries = append(entries, model.JournalEntry{
			ID:          entryID,
			Date:        date,
			Description: rec[colDesc],
			Items:       []model.JournalItem{item},
		})
	}
	return entries, nil
}

func marshalRow(entry model.JournalEntry, item model.JournalItem) []string {
	row := make([]string, numFields)
	row[colEntryID] = entry.ID
	row[colDate] = entry.Date.Format(dateFormat)
	row[colDesc] = entry.Description
	row[colAcctID] = item.AccountID

	if !item.Debit.IsZero() {
		row[colDebit] = item.Debit.StringFixed(2)
	}
	if !item.Credit.IsZero() {
		row[colCredit] = item.Credit.StringFixed(2)
	}
	return row
}

func unmarshalItem(record []string) (model.JournalItem, error) {
	var debit, credit decimal.Decimal
	var err error

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return model.JournalItem{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}
	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return model.JournalItem{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return model.JournalItem{
		AccountID: record[colAcctID],
		Debit:     debit,
		Credit:    credit,
	}, nil
}
