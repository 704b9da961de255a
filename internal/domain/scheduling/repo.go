package scheduling

import (
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type AppointmentRepository interface {
	store.Repository[Appointment]
}
