package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	ids map[string]bool
}

func newMockAccounts(ids ...string) *mockAccounts {
	m := &mockAccounts{ids: make(map[string]bool)}
	for _, id := range ids {
		m.ids[id] = true
	}
	return m
}

func (m *mockAccounts) Exists(id string) bool { return m.ids[id] }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(items ...model.JournalItem) model.JournalEntry {
	return model.JournalEntry{
		ID:          "JRN-test",
		Date:        date(2025, 3, 1),
		Description: "test entry",
		Items:       items,
	}
}

func TestValidateEntry_OK(t *testing.T) {
	accts := newMockAccounts("1", "9")
	e := entry(
		model.JournalItem{AccountID: "1", Debit: dec("200.00")},
		model.JournalItem{AccountID: "9", Credit: dec("200.00")},
	)
	assert.Empty(t, ValidateEntry(e, accts))
}

func TestValidateEntry_Unbalanced(t *testing.T) {
	accts := newMockAccounts("1", "9")
	e := entry(
		model.JournalItem{AccountID: "1", Debit: dec("200.00")},
		model.JournalItem{AccountID: "9", Credit: dec("150.00")},
	)
	errs := ValidateEntry(e, accts)
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Invariant)
	assert.Contains(t, errs[0].Error(), "200.00")
}

func TestValidateEntry_NoItems(t *testing.T) {
	errs := ValidateEntry(entry(), newMockAccounts())
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Invariant)
}

func TestValidateEntry_UnknownAccount(t *testing.T) {
	accts := newMockAccounts("1")
	e := entry(
		model.JournalItem{AccountID: "1", Debit: dec("50")},
		model.JournalItem{AccountID: "404", Credit: dec("50")},
	)
	errs := ValidateEntry(e, accts)
	require.Len(t, errs, 1)
	assert.Equal(t, 3, errs[0].Invariant)
	assert.Contains(t, errs[0].Description, "404")
}

func TestValidateEntry_NegativeAmount(t *testing.T) {
	accts := newMockAccounts("1", "9")
	e := entry(
		model.JournalItem{AccountID: "1", Debit: dec("-50")},
		model.JournalItem{AccountID: "9", Credit: dec("-50")},
	)
	errs := ValidateEntry(e, accts)
	require.NotEmpty(t, errs)
	found := false
	for _, ve := range errs {
		if ve.Invariant == 4 {
			found = true
		}
	}
	assert.True(t, found, "expected a negative-amount violation")
}

func TestValidateEntry_EmptyItem(t *testing.T) {
	accts := newMockAccounts("1", "9")
	e := entry(
		model.JournalItem{AccountID: "1", Debit: dec("50")},
		model.JournalItem{AccountID: "9", Credit: dec("50")},
		model.JournalItem{AccountID: "9"},
	)
	errs := ValidateEntry(e, accts)
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Invariant)
}

func TestValidateEntry_TooManyDecimals(t *testing.T) {
	accts := newMockAccounts("1", "9")
	e := entry(
		model.JournalItem{AccountID: "1", Debit: dec("33.333")},
		model.JournalItem{AccountID: "9", Credit: dec("33.333")},
	)
	errs := ValidateEntry(e, accts)
	require.Len(t, errs, 2)
	assert.Equal(t, 5, errs[0].Invariant)
}
