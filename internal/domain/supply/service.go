package supply

import (
	"context"
	"strings"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type Service struct {
	items ItemRepository
}

func NewService(items ItemRepository) *Service {
	return &Service{items: items}
}

// Filter narrows an inventory listing. Query matches name or supplier.
type Filter struct {
	Category string
	Status   Status
	Query    string
}

func (f Filter) match(it Item) bool {
	if f.Category != "" && !strings.EqualFold(it.Category, f.Category) {
		return false
	}
	if f.Status != "" && it.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return q == "" ||
		strings.Contains(strings.ToLower(it.Name), q) ||
		strings.Contains(strings.ToLower(it.Supplier), q)
}

func (s *Service) CreateItem(ctx context.Context, it Item) (Item, error) {
	return s.items.Add(ctx, it)
}

func (s *Service) GetItem(id string) (Item, error) {
	return s.items.Get(id)
}

func (s *Service) ListItems(f Filter) []Item {
	return s.items.Filter(f.match)
}

// NeedsReorder lists items that are low on or out of stock.
func (s *Service) NeedsReorder() []Item {
	return s.items.Filter(func(it Item) bool { return it.Status != StatusInStock })
}

// ExpiringBy lists items with an expiry date on or before date.
func (s *Service) ExpiringBy(date string) []Item {
	return s.items.Filter(func(it Item) bool { return it.ExpiryDate != "" && it.ExpiryDate <= date })
}

func (s *Service) UpdateItem(ctx context.Context, id string, patch store.Patch) (Item, error) {
	return s.items.Update(ctx, id, patch)
}

// Adjust adds delta to the quantity on hand; negative deltas dispense.
// Stock never goes below zero.
func (s *Service) Adjust(ctx context.Context, id string, delta int) (Item, error) {
	it, err := s.items.Get(id)
	if err != nil {
		return Item{}, err
	}
	if it.Quantity+delta < 0 {
		return Item{}, store.Invalid("quantity", "only %d %s on hand", it.Quantity, it.Unit)
	}
	return s.items.Update(ctx, id, store.MustPatch(map[string]any{"quantity": it.Quantity + delta}))
}

func (s *Service) DeleteItem(ctx context.Context, id string) (bool, error) {
	return s.items.Delete(ctx, id)
}

func (s *Service) Stats() Stats {
	return Summarize(s.items.All())
}
