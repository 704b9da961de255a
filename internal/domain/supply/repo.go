package supply

import "github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"

type ItemRepository interface {
	store.Repository[Item]
}
