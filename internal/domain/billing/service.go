package billing

import (
	"context"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type Service struct {
	invoices InvoiceRepository
	now      func() time.Time
}

func NewService(invoices InvoiceRepository) *Service {
	return &Service{invoices: invoices, now: time.Now}
}

// Filter narrows an invoice listing. From and To bound the invoice date.
type Filter struct {
	PatientID string
	Status    Status
	From      string
	To        string
}

func (f Filter) match(inv Invoice) bool {
	switch {
	case f.PatientID != "" && inv.PatientID != f.PatientID:
		return false
	case f.Status != "" && inv.Status != f.Status:
		return false
	case f.From != "" && inv.Date < f.From:
		return false
	case f.To != "" && inv.Date > f.To:
		return false
	}
	return true
}

func (s *Service) CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error) {
	return s.invoices.Add(ctx, inv)
}

func (s *Service) GetInvoice(id string) (Invoice, error) {
	return s.invoices.Get(id)
}

func (s *Service) ListInvoices(f Filter) []Invoice {
	return s.invoices.Filter(f.match)
}

// UpdateInvoice merges patch. A patch that changes items must carry the
// matching totalAmount.
func (s *Service) UpdateInvoice(ctx context.Context, id string, patch store.Patch) (Invoice, error) {
	return s.invoices.Update(ctx, id, patch)
}

// RecordPayment adds amount to what has been paid, marking the invoice paid
// once the balance reaches zero and partial before that.
func (s *Service) RecordPayment(ctx context.Context, id string, amount float64, method string) (Invoice, error) {
	inv, err := s.invoices.Get(id)
	if err != nil {
		return Invoice{}, err
	}
	if !inv.Open() {
		return Invoice{}, store.Invalid("status", "cannot take payment on a %s invoice", inv.Status)
	}
	if Cents(amount) <= 0 {
		return Invoice{}, store.Invalid("amount", "must be positive")
	}
	if Cents(amount) > Cents(inv.Balance()) {
		return Invoice{}, store.Invalid("amount", "exceeds balance of %.2f", inv.Balance())
	}
	paid := float64(Cents(inv.PaidAmount)+Cents(amount)) / 100
	status := StatusPartial
	if Cents(paid) == Cents(inv.TotalAmount) {
		status = StatusPaid
	}
	fields := map[string]any{"paidAmount": paid, "status": status}
	if method != "" {
		fields["paymentMethod"] = method
	}
	patch, err := store.PatchOf(fields)
	if err != nil {
		return Invoice{}, err
	}
	return s.invoices.Update(ctx, id, patch)
}

// Cancel voids an invoice nothing has been paid on.
func (s *Service) Cancel(ctx context.Context, id string) (Invoice, error) {
	inv, err := s.invoices.Get(id)
	if err != nil {
		return Invoice{}, err
	}
	if Cents(inv.PaidAmount) > 0 {
		return Invoice{}, store.Invalid("status", "cannot cancel an invoice with payments")
	}
	return s.invoices.Update(ctx, id, store.MustPatch(map[string]any{"status": StatusCancelled}))
}

// MarkOverdue flags every pending or partial invoice whose due date is
// before today and returns the ones it changed.
func (s *Service) MarkOverdue(ctx context.Context) ([]Invoice, error) {
	today := s.now().Format(store.DateLayout)
	late := s.invoices.Filter(func(inv Invoice) bool {
		return (inv.Status == StatusPending || inv.Status == StatusPartial) && inv.DueDate < today
	})
	out := make([]Invoice, 0, len(late))
	for _, inv := range late {
		updated, err := s.invoices.Update(ctx, inv.ID, store.MustPatch(map[string]any{"status": StatusOverdue}))
		if err != nil {
			return out, err
		}
		out = append(out, updated)
	}
	return out, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) (bool, error) {
	return s.invoices.Delete(ctx, id)
}

func (s *Service) Stats() Stats {
	return Summarize(s.invoices.All())
}
