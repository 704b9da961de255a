package medication

import "github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"

type MedicationRepository interface {
	store.Repository[Medication]
}
