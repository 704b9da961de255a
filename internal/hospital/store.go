// Package hospital assembles the eight entity collections into one store,
// answers the queries that span them and keeps their references consistent
// on delete.
package hospital

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/admin"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/billing"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/diagnostics"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/identity"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/medication"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/scheduling"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/supply"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

// Durable keys, one per collection.
const (
	KeyPatients     = "hms_patients"
	KeyDoctors      = "hms_doctors"
	KeyAppointments = "hms_appointments"
	KeyMedications  = "hms_medications"
	KeyLabTests     = "hms_lab_tests"
	KeyInvoices     = "hms_invoices"
	KeyInventory    = "hms_inventory"
	KeyStaff        = "hms_staff"
)

// Keys lists every collection key in hydration order.
var Keys = []string{
	KeyPatients, KeyDoctors, KeyAppointments, KeyMedications,
	KeyLabTests, KeyInvoices, KeyInventory, KeyStaff,
}

// ErrHasDependents is returned when deleting a record that others still
// reference.
var ErrHasDependents = fmt.Errorf("record has dependents: %w", store.ErrConflict)

// Store holds every collection. Build one with New and fill it with
// Hydrate before serving from it.
type Store struct {
	Patients     *store.Collection[identity.Patient, *identity.Patient]
	Doctors      *store.Collection[identity.Doctor, *identity.Doctor]
	Appointments *store.Collection[scheduling.Appointment, *scheduling.Appointment]
	Medications  *store.Collection[medication.Medication, *medication.Medication]
	LabTests     *store.Collection[diagnostics.LabTest, *diagnostics.LabTest]
	Invoices     *store.Collection[billing.Invoice, *billing.Invoice]
	Inventory    *store.Collection[supply.Item, *supply.Item]
	Staff        *store.Collection[admin.StaffMember, *admin.StaffMember]

	logger zerolog.Logger
}

// New builds an empty store over medium. Options apply to every collection.
func New(medium store.Medium, logger zerolog.Logger, opts ...store.Option) *Store {
	return &Store{
		Patients:     store.NewCollection[identity.Patient]("patients", KeyPatients, "p", medium, opts...),
		Doctors:      store.NewCollection[identity.Doctor]("doctors", KeyDoctors, "d", medium, opts...),
		Appointments: store.NewCollection[scheduling.Appointment]("appointments", KeyAppointments, "a", medium, opts...),
		Medications:  store.NewCollection[medication.Medication]("medications", KeyMedications, "m", medium, opts...),
		LabTests:     store.NewCollection[diagnostics.LabTest]("lab tests", KeyLabTests, "l", medium, opts...),
		Invoices:     store.NewCollection[billing.Invoice]("invoices", KeyInvoices, "i", medium, opts...),
		Inventory:    store.NewCollection[supply.Item]("inventory", KeyInventory, "inv", medium, opts...),
		Staff:        store.NewCollection[admin.StaffMember]("staff", KeyStaff, "s", medium, opts...),
		logger:       logger.With().Str("component", "store").Logger(),
	}
}

// Open builds a store over medium and hydrates it.
func Open(ctx context.Context, medium store.Medium, logger zerolog.Logger, opts ...store.Option) (*Store, error) {
	s := New(medium, logger, opts...)
	if _, err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Hydrate loads each collection from the medium, falling back to the seed
// dataset for collections never stored or stored unreadably.
func (s *Store) Hydrate(ctx context.Context) ([]store.HydrateResult, error) {
	seed := Seed()
	steps := []func() (store.HydrateResult, error){
		func() (store.HydrateResult, error) { return s.Patients.Hydrate(ctx, seed.Patients) },
		func() (store.HydrateResult, error) { return s.Doctors.Hydrate(ctx, seed.Doctors) },
		func() (store.HydrateResult, error) { return s.Appointments.Hydrate(ctx, seed.Appointments) },
		func() (store.HydrateResult, error) { return s.Medications.Hydrate(ctx, seed.Medications) },
		func() (store.HydrateResult, error) { return s.LabTests.Hydrate(ctx, seed.LabTests) },
		func() (store.HydrateResult, error) { return s.Invoices.Hydrate(ctx, seed.Invoices) },
		func() (store.HydrateResult, error) { return s.Inventory.Hydrate(ctx, seed.Inventory) },
		func() (store.HydrateResult, error) { return s.Staff.Hydrate(ctx, seed.Staff) },
	}
	results := make([]store.HydrateResult, 0, len(steps))
	for _, step := range steps {
		res, err := step()
		if err != nil {
			return results, fmt.Errorf("hydrate %s: %w", res.Collection, err)
		}
		if res.Corruption != nil {
			s.logger.Warn().Err(res.Corruption).Str("collection", res.Collection).
				Msg("stored collection unreadable, re-seeded")
		}
		s.logger.Info().Str("collection", res.Collection).Str("source", string(res.Source)).
			Int("count", res.Count).Msg("collection hydrated")
		results = append(results, res)
	}
	return results, nil
}

// Reset discards every collection and writes the seed dataset in its place.
func (s *Store) Reset(ctx context.Context) error {
	seed := Seed()
	err := errors.Join(
		s.Patients.Reset(ctx, seed.Patients),
		s.Doctors.Reset(ctx, seed.Doctors),
		s.Appointments.Reset(ctx, seed.Appointments),
		s.Medications.Reset(ctx, seed.Medications),
		s.LabTests.Reset(ctx, seed.LabTests),
		s.Invoices.Reset(ctx, seed.Invoices),
		s.Inventory.Reset(ctx, seed.Inventory),
		s.Staff.Reset(ctx, seed.Staff),
	)
	if err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	s.logger.Info().Msg("store reset to seed data")
	return nil
}

// Counts reports the size of every collection, keyed by collection name.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		s.Patients.Name():     s.Patients.Len(),
		s.Doctors.Name():      s.Doctors.Len(),
		s.Appointments.Name(): s.Appointments.Len(),
		s.Medications.Name():  s.Medications.Len(),
		s.LabTests.Name():     s.LabTests.Len(),
		s.Invoices.Name():     s.Invoices.Len(),
		s.Inventory.Name():    s.Inventory.Len(),
		s.Staff.Name():        s.Staff.Len(),
	}
}

// Topics maps every collection name to the resource that guards reading it.
func (s *Store) Topics() map[string]auth.Resource {
	return map[string]auth.Resource{
		s.Patients.Name():     auth.ResourcePatients,
		s.Doctors.Name():      auth.ResourceDoctors,
		s.Appointments.Name(): auth.ResourceAppointments,
		s.Medications.Name():  auth.ResourceMedications,
		s.LabTests.Name():     auth.ResourceLabTests,
		s.Invoices.Name():     auth.ResourceInvoices,
		s.Inventory.Name():    auth.ResourceInventory,
		s.Staff.Name():        auth.ResourceStaff,
	}
}
