package inventory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Delta is one stock movement. Positive Qty is incoming stock; when
// Priced is set, UnitPrice feeds the weighted-average recomputation.
// Negative Qty is outgoing stock and never carries a price: the cost
// basis for an outgoing movement must be read by the caller before the
// decrement is applied.
type Delta struct {
	ItemID    string
	Qty       decimal.Decimal
	UnitPrice decimal.Decimal
	Priced    bool
}

// Service owns per-item quantity and moving-average unit cost.
type Service struct {
	items []model.InventoryItem
	byID  map[string]int
}

// NewService creates a Service from a slice of items.
func NewService(items []model.InventoryItem) *Service {
	s := &Service{
		items: make([]model.InventoryItem, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(s.items, items)
	for i, it := range s.items {
		s.byID[it.ID] = i
	}
	return s
}

// All returns a copy of all items.
func (s *Service) All() []model.InventoryItem {
	out := make([]model.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns an item by ID.
func (s *Service) Get(id string) (model.InventoryItem, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.InventoryItem{}, false
	}
	return s.items[i], true
}

// Add registers a new item. The ID must be unique and the quantity and
// unit price non-negative.
func (s *Service) Add(item model.InventoryItem) error {
	if item.ID == "" {
		return fmt.Errorf("item has no ID")
	}
	if _, exists := s.byID[item.ID]; exists {
		return fmt.Errorf("duplicate item ID %q", item.ID)
	}
	if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
		return fmt.Errorf("item %q: negative quantity or unit price", item.ID)
	}
	s.items = append(s.items, item)
	s.byID[item.ID] = len(s.items) - 1
	return nil
}

// Categories returns the distinct item categories, sorted.
func (s *Service) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range s.items {
		c := it.Category
		if c == "" {
			c = "general"
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// ApplyDelta applies one stock movement and returns the updated item.
//
// Incoming stock with a price recomputes the weighted-average unit cost:
// (oldQty*oldCost + qty*price) / (oldQty + qty). Incoming stock without a
// price leaves the cost unchanged. Outgoing stock clamps the quantity at
// zero and never touches the cost; stock sufficiency is the caller's
// check, made before this call.
func (s *Service) ApplyDelta(d Delta) (model.InventoryItem, error) {
	i, ok := s.byID[d.ItemID]
	if !ok {
		return model.InventoryItem{}, fmt.Errorf("unknown inventory item %q", d.ItemID)
	}
	item := &s.items[i]

	newQty := item.Quantity.Add(d.Qty)
	if d.Qty.IsPositive() && d.Priced {
		oldValue := item.Quantity.Mul(item.UnitPrice)
		inValue := d.Qty.Mul(d.UnitPrice)
		item.UnitPrice = oldValue.Add(inValue).Div(newQty)
	}
	if newQty.IsNegative() {
		newQty = decimal.Zero
	}
	item.Quantity = newQty
	return *item, nil
}
