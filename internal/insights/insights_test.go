package insights

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAnalyze_NilClient(t *testing.T) {
	svc := NewService(nil, "en")
	got := svc.Analyze(context.Background(), nil, nil)
	assert.Equal(t, Fallback(), got)
}

func TestFallback(t *testing.T) {
	got := Fallback()
	require.Len(t, got, 1)
	assert.Equal(t, model.InsightInfo, got[0].Type)
	assert.NotEmpty(t, got[0].Title)
}

func TestBuildPrompt(t *testing.T) {
	accts := []model.Account{
		{Name: "Cash", Type: model.AccountTypeAsset, Balance: dec("1200.5")},
	}
	entries := []model.JournalEntry{{
		Date:        time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Description: "Sale - Widget",
		Items: []model.JournalItem{
			{AccountID: "1", Debit: dec("200")},
			{AccountID: "9", Credit: dec("200")},
		},
	}}

	prompt, err := buildPrompt(accts, entries, "ar")
	require.NoError(t, err)
	assert.Contains(t, prompt, `"Cash"`)
	assert.Contains(t, prompt, `"1200.50"`)
	assert.Contains(t, prompt, "Sale - Widget")
	assert.Contains(t, prompt, `"totalDebits":"200.00"`)
	assert.Contains(t, prompt, `"ar"`)
}

func TestBuildPrompt_CapsEntries(t *testing.T) {
	entries := make([]model.JournalEntry, 8)
	for i := range entries {
		entries[i] = model.JournalEntry{
			Date:        time.Date(2025, 2, i+1, 0, 0, 0, 0, time.UTC),
			Description: "Entry",
		}
	}

	prompt, err := buildPrompt(nil, entries, "")
	require.NoError(t, err)
	// Only the first five make it into the prompt.
	assert.Contains(t, prompt, "2025-02-05")
	assert.NotContains(t, prompt, "2025-02-06")
	assert.Contains(t, prompt, `"en"`, "empty language defaults to English")
}

func TestParseInsights(t *testing.T) {
	got, err := parseInsights(`[
		{"title": "Healthy margin", "content": "Gross profit is strong.", "type": "success"},
		{"title": "Low cash", "content": "Cash is running down.", "type": "warning"}
	]`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.InsightSuccess, got[0].Type)
	assert.Equal(t, "Low cash", got[1].Title)
}

func TestParseInsights_UnknownType(t *testing.T) {
	_, err := parseInsights(`[{"title": "t", "content": "c", "type": "critical"}]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "critical")
}

func TestParseInsights_BadJSON(t *testing.T) {
	_, err := parseInsights("not json")
	require.Error(t, err)
}
