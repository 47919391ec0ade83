// Package memory provides an in-memory Store for tests and local development.
package memory

import (
	"context"
	"sync"

	"example.com/energy/internal/domain"
)

// Store keeps everything in process memory. Insertion order of activities
// and plan entries is preserved, matching what the catalog expects.
type Store struct {
	mu           sync.RWMutex
	activities   []domain.Activity
	pairs        []domain.Pair
	plan         []domain.PlanEntry
	snapshots    map[string]domain.Snapshot
	distribution map[string]domain.DistributionPoint
	energy       float64
	energySet    bool
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		snapshots:    make(map[string]domain.Snapshot),
		distribution: make(map[string]domain.DistributionPoint),
	}
}

// ListActivities implements domain.Store.
func (s *Store) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Activity, len(s.activities))
	copy(out, s.activities)
	return out, nil
}

// CreateActivity implements domain.Store.
func (s *Store) CreateActivity(ctx context.Context, activity domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, activity)
	return nil
}

// UpdateActivity implements domain.Store.
func (s *Store) UpdateActivity(ctx context.Context, activity domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == activity.ID {
			s.activities[i] = activity
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

// DeleteActivity implements domain.Store.
func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

// ListPairs implements domain.Store.
func (s *Store) ListPairs(ctx context.Context) ([]domain.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Pair, len(s.pairs))
	copy(out, s.pairs)
	return out, nil
}

// CreatePair implements domain.Store. The pair and both of its activities
// land in one logical write, mirroring the transactional Postgres path.
func (s *Store) CreatePair(ctx context.Context, pair domain.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, pair.Drain, pair.Boost)
	s.pairs = append(s.pairs, pair)
	return nil
}

// DeletePair implements domain.Store, removing the pair and its activities.
func (s *Store) DeletePair(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pairs {
		if s.pairs[i].ID == id {
			pair := s.pairs[i]
			s.pairs = append(s.pairs[:i], s.pairs[i+1:]...)
			s.removeActivityLocked(pair.Drain.ID)
			s.removeActivityLocked(pair.Boost.ID)
			return nil
		}
	}
	return domain.ErrPairNotFound
}

func (s *Store) removeActivityLocked(id string) {
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			return
		}
	}
}

// ListPlan implements domain.Store.
func (s *Store) ListPlan(ctx context.Context) ([]domain.PlanEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PlanEntry, len(s.plan))
	copy(out, s.plan)
	return out, nil
}

// AddPlanEntry implements domain.Store.
func (s *Store) AddPlanEntry(ctx context.Context, entry domain.PlanEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = append(s.plan, entry)
	return nil
}

// RemovePlanEntry implements domain.Store.
func (s *Store) RemovePlanEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.plan {
		if s.plan[i].ID == id {
			s.plan = append(s.plan[:i], s.plan[i+1:]...)
			return nil
		}
	}
	return domain.ErrPlanEntryNotFound
}

// ClearPlan implements domain.Store.
func (s *Store) ClearPlan(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = nil
	return nil
}

// SaveSnapshot implements domain.Store. Same-date writes overwrite.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.Date] = snapshot
	return nil
}

// GetSnapshot implements domain.Store. A missing date yields (nil, nil).
func (s *Store) GetSnapshot(ctx context.Context, date string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[date]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}

// SaveDistribution implements domain.Store. Same-date writes overwrite.
func (s *Store) SaveDistribution(ctx context.Context, point domain.DistributionPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distribution[point.Date] = point
	return nil
}

// ListDistribution implements domain.Store.
func (s *Store) ListDistribution(ctx context.Context) ([]domain.DistributionPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DistributionPoint, 0, len(s.distribution))
	for _, point := range s.distribution {
		out = append(out, point)
	}
	return out, nil
}

// EnergyLevel implements domain.Store. Defaults to 100 before the first write.
func (s *Store) EnergyLevel(ctx context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.energySet {
		return 100, nil
	}
	return s.energy, nil
}

// SetEnergyLevel implements domain.Store.
func (s *Store) SetEnergyLevel(ctx context.Context, level float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.energy = level
	s.energySet = true
	return nil
}
