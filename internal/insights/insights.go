// Package insights is the advisory collaborator: it asks Gemini for a
// handful of observations about the books. Strictly best-effort — any
// failure (no client, timeout, malformed response) degrades to a local
// default insight and never blocks or corrupts the engine.
package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/tallybook-dev/tallybook/internal/model"
)

const defaultModel = "gemini-2.5-flash"

// recentEntries caps how much journal history goes into the prompt.
const recentEntries = 5

// Advisor produces advisory insights for the given books.
type Advisor interface {
	Analyze(ctx context.Context, accounts []model.Account, entries []model.JournalEntry) []model.Insight
}

// Service is the Gemini-backed Advisor.
type Service struct {
	client   *genai.Client
	model    string
	language string
}

// NewService creates a Service. A nil client is allowed and makes every
// Analyze call return the fallback insight.
func NewService(client *genai.Client, language string) *Service {
	return &Service{client: client, model: defaultModel, language: language}
}

// Analyze returns advisory insights for the books, or the fallback on
// any failure.
func (s *Service) Analyze(ctx context.Context, accounts []model.Account, entries []model.JournalEntry) []model.Insight {
	if s.client == nil {
		return Fallback()
	}

	prompt, err := buildPrompt(accounts, entries, s.language)
	if err != nil {
		return Fallback()
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), generateConfig())
	if err != nil {
		return Fallback()
	}

	out, err := parseInsights(resp.Text())
	if err != nil || len(out) == 0 {
		return Fallback()
	}
	return out
}

// Fallback returns the default informational insight used whenever the
// advisory service is unavailable.
func Fallback() []model.Insight {
	return []model.Insight{{
		Title:   "Quick check",
		Content: "Keep an eye on the balance sheet: total assets should always equal liabilities plus equity.",
		Type:    model.InsightInfo,
	}}
}

func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":   {Type: genai.TypeString},
					"content": {Type: genai.TypeString},
					"type":    {Type: genai.TypeString, Enum: []string{"success", "warning", "info"}},
				},
				Required: []string{"title", "content", "type"},
			},
		},
	}
}

type promptAccount struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Balance string `json:"balance"`
}

type promptEntry struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Debits      string `json:"totalDebits"`
}

func buildPrompt(accounts []model.Account, entries []model.JournalEntry, language string) (string, error) {
	accts := make([]promptAccount, 0, len(accounts))
	for _, a := range accounts {
		accts = append(accts, promptAccount{Name: a.Name, Type: string(a.Type), Balance: a.Balance.StringFixed(2)})
	}

	recent := entries
	if len(recent) > recentEntries {
		recent = recent[:recentEntries]
	}
	ents := make([]promptEntry, 0, len(recent))
	for _, e := range recent {
		ents = append(ents, promptEntry{
			Date:        e.Date.Format("2006-01-02"),
			Description: e.Description,
			Debits:      e.TotalDebit().StringFixed(2),
		})
	}

	acctsJSON, err := json.Marshal(accts)
	if err != nil {
		return "", err
	}
	entsJSON, err := json.Marshal(ents)
	if err != nil {
		return "", err
	}

	if language == "" {
		language = "en"
	}
	return fmt.Sprintf(`You are an expert financial advisor for a small business.
Analyze the following bookkeeping data.

Accounts: %s
Recent entries: %s

Provide 3 insights about the company's financial performance, in language %q.
Respond with a JSON array of objects with fields title, content and type
(one of "success", "warning", "info").`, acctsJSON, entsJSON, language), nil
}

func parseInsights(text string) ([]model.Insight, error) {
	var out []model.Insight
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("parsing insights: %w", err)
	}
	for _, ins := range out {
		switch ins.Type {
		case model.InsightSuccess, model.InsightWarning, model.InsightInfo:
		default:
			return nil, fmt.Errorf("unknown insight type %q", ins.Type)
		}
	}
	return out, nil
}
