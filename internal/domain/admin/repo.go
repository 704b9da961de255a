package admin

import "github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"

type StaffRepository interface {
	store.Repository[StaffMember]
}
