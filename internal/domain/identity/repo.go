package identity

import (
	"context"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type PatientRepository interface {
	store.Repository[Patient]
}

type DoctorRepository interface {
	store.Repository[Doctor]
}

// Remover deletes patients and doctors together with, or guarded by, the
// records that reference them.
type Remover interface {
	DeletePatient(ctx context.Context, id string) (bool, error)
	DeleteDoctor(ctx context.Context, id string) (bool, error)
}
