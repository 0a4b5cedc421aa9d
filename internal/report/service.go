package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/store"
	"github.com/dentassist/dentsync/pkg/errors"
)

// Service serves derived views over the live store. Results are memoized per
// store version: a cache entry is valid exactly until the next dispatch,
// which bumps the version and changes every key.
type Service struct {
	store *store.Store
	cache *cache.Cache
}

func NewService(st *store.Store) *Service {
	return &Service{
		store: st,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) OutstandingBalance() float64 {
	state, version := s.store.StateVersion()
	key := fmt.Sprintf("balance:%d", version)
	if v, ok := s.cache.Get(key); ok {
		return v.(float64)
	}
	total := ClinicOutstandingBalance(state.Patients)
	s.cache.Set(key, total, cache.DefaultExpiration)
	return total
}

func (s *Service) PatientOutstandingBalance(patientID uuid.UUID) (float64, error) {
	for _, p := range s.store.State().Patients {
		if p.ID == patientID {
			return OutstandingBalance(p.BillingEntries), nil
		}
	}
	return 0, errors.NotFound("patient", nil)
}

func (s *Service) NetBalance(from, to time.Time) BalanceSummary {
	return NetBalance(s.store.State().Transactions, from, to)
}

func (s *Service) MonthlyRollup(months int) []MonthBucket {
	state, version := s.store.StateVersion()
	key := fmt.Sprintf("rollup:%d:%d", months, version)
	if v, ok := s.cache.Get(key); ok {
		return v.([]MonthBucket)
	}
	buckets := MonthlyRollup(state.Transactions, months, time.Now().UTC())
	s.cache.Set(key, buckets, cache.DefaultExpiration)
	return buckets
}

func (s *Service) ProcedureHistogram() []CategoryCount {
	state, version := s.store.StateVersion()
	key := fmt.Sprintf("histogram:%d", version)
	if v, ok := s.cache.Get(key); ok {
		return v.([]CategoryCount)
	}
	hist := ProcedureHistogram(state.Patients)
	s.cache.Set(key, hist, cache.DefaultExpiration)
	return hist
}

// Patient returns the patient record for export and per-patient views.
func (s *Service) Patient(patientID uuid.UUID) (*model.Patient, error) {
	for _, p := range s.store.State().Patients {
		if p.ID == patientID {
			return p, nil
		}
	}
	return nil, errors.NotFound("patient", nil)
}
