package accounts

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Service provides in-memory lookup and balance mutation over the chart
// of accounts. Balances change only through ApplyDelta; everything else
// is read-only.
type Service struct {
	accounts []model.Account
	byID     map[string]int
	byCode   map[string]int
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	s := &Service{
		accounts: make([]model.Account, len(accounts)),
		byID:     make(map[string]int, len(accounts)),
		byCode:   make(map[string]int, len(accounts)),
	}
	copy(s.accounts, accounts)
	for i, a := range s.accounts {
		s.byID[a.ID] = i
		s.byCode[a.Code] = i
	}
	return s
}

// All returns a copy of all accounts in chart order.
func (s *Service) All() []model.Account {
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.Account{}, false
	}
	return s.accounts[i], true
}

// ByCode returns an account by its chart code.
func (s *Service) ByCode(code string) (model.Account, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return model.Account{}, false
	}
	return s.accounts[i], true
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByType returns all accounts of the given type, in chart order.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Search returns accounts whose code, name or type contains term
// (case-insensitive). An empty term matches everything.
func (s *Service) Search(term string) []model.Account {
	if term == "" {
		return s.All()
	}
	term = strings.ToLower(term)
	var result []model.Account
	for _, a := range s.accounts {
		if strings.Contains(strings.ToLower(a.Name), term) ||
			strings.Contains(strings.ToLower(a.Code), term) ||
			strings.Contains(strings.ToLower(string(a.Type)), term) {
			result = append(result, a)
		}
	}
	return result
}

// ApplyDelta applies one journal item to the referenced account's running
// balance and returns the new balance. Debit-normal accounts move by
// debit-credit, credit-normal accounts by credit-debit. Items referencing
// an unknown account are ignored and reported via ok=false; the caller
// still keeps the entry in history.
func (s *Service) ApplyDelta(item model.JournalItem) (newBalance decimal.Decimal, ok bool) {
	i, found := s.byID[item.AccountID]
	if !found {
		return decimal.Zero, false
	}
	acct := &s.accounts[i]
	acct.Balance = acct.Balance.Add(Contribution(acct.Type.NormalSide(), item))
	return acct.Balance, true
}

// Contribution returns the signed movement a journal item makes on the
// given normal side: debit-credit for debit-normal, credit-debit for
// credit-normal.
func Contribution(side model.NormalSide, item model.JournalItem) decimal.Decimal {
	if side == model.NormalDebit {
		return item.Debit.Sub(item.Credit)
	}
	return item.Credit.Sub(item.Debit)
}
