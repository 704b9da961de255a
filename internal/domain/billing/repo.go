package billing

import "github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"

type InvoiceRepository interface {
	store.Repository[Invoice]
}
