package diagnostics

import "github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"

type LabTestRepository interface {
	store.Repository[LabTest]
}
