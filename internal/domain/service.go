package domain

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service orchestrates catalog, plan, snapshot and energy workflows.
type Service struct {
	store Store
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service clock. Used by tests to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService constructs a Service.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const dateLayout = "2006-01-02"

func validateActivityInput(name string, percentage float64) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) {
		return &ValidationError{Field: "percentage", Reason: "must be a finite number"}
	}
	if percentage < 0 || percentage > 100 {
		return &ValidationError{Field: "percentage", Reason: "must be between 0 and 100"}
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return &ValidationError{Field: "date", Reason: "must use YYYY-MM-DD"}
	}
	return nil
}

// ListActivities returns every catalog activity, each tagged with its kind.
func (s *Service) ListActivities(ctx context.Context) ([]Activity, error) {
	return s.store.ListActivities(ctx)
}

// CreateActivity validates the input, assigns an identifier and persists
// the new catalog entry.
func (s *Service) CreateActivity(ctx context.Context, name string, percentage float64, kind Kind) (*Activity, error) {
	if err := validateActivityInput(name, percentage); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, &ValidationError{Field: "type", Reason: "must be drain or boost"}
	}

	activity := Activity{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		Percentage: percentage,
		Kind:       kind,
	}
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivity overwrites the name and percentage of an existing activity.
func (s *Service) UpdateActivity(ctx context.Context, id, name string, percentage float64) (*Activity, error) {
	if err := validateActivityInput(name, percentage); err != nil {
		return nil, err
	}

	activities, err := s.store.ListActivities(ctx)
	if err != nil {
		return nil, err
	}
	var current *Activity
	for i := range activities {
		if activities[i].ID == id {
			current = &activities[i]
			break
		}
	}
	if current == nil {
		return nil, ErrActivityNotFound
	}

	updated := Activity{
		ID:         id,
		Name:       strings.TrimSpace(name),
		Percentage: percentage,
		Kind:       current.Kind,
	}
	if err := s.store.UpdateActivity(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteActivity removes a catalog activity.
func (s *Service) DeleteActivity(ctx context.Context, id string) error {
	return s.store.DeleteActivity(ctx, id)
}

// PairInput is one half of a pair creation request.
type PairInput struct {
	Name       string
	Percentage float64
}

// CreatePair creates the drain activity, the boost activity and the pair
// record linking them as one unit. Both halves must validate before
// anything is written.
func (s *Service) CreatePair(ctx context.Context, drain, boost PairInput) (*Pair, error) {
	if err := validateActivityInput(drain.Name, drain.Percentage); err != nil {
		return nil, err
	}
	if err := validateActivityInput(boost.Name, boost.Percentage); err != nil {
		return nil, err
	}

	pair := Pair{
		ID: uuid.NewString(),
		Drain: Activity{
			ID:         uuid.NewString(),
			Name:       strings.TrimSpace(drain.Name),
			Percentage: drain.Percentage,
			Kind:       KindDrain,
		},
		Boost: Activity{
			ID:         uuid.NewString(),
			Name:       strings.TrimSpace(boost.Name),
			Percentage: boost.Percentage,
			Kind:       KindBoost,
		},
	}
	if err := s.store.CreatePair(ctx, pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// ListPairs returns all drain/boost pairs.
func (s *Service) ListPairs(ctx context.Context) ([]Pair, error) {
	return s.store.ListPairs(ctx)
}

// DeletePair removes a pair and both of its activities.
func (s *Service) DeletePair(ctx context.Context, id string) error {
	return s.store.DeletePair(ctx, id)
}

// AddToPlan toggles an activity into today's plan, issuing a plan entry
// identifier the caller uses later to address the removal.
func (s *Service) AddToPlan(ctx context.Context, activityID string) (*PlanEntry, error) {
	activities, err := s.store.ListActivities(ctx)
	if err != nil {
		return nil, err
	}
	for _, activity := range activities {
		if activity.ID == activityID {
			entry := PlanEntry{ID: uuid.NewString(), Activity: activity}
			if err := s.store.AddPlanEntry(ctx, entry); err != nil {
				return nil, err
			}
			return &entry, nil
		}
	}
	return nil, ErrActivityNotFound
}

// RemoveFromPlan drops a single plan entry.
func (s *Service) RemoveFromPlan(ctx context.Context, entryID string) error {
	return s.store.RemovePlanEntry(ctx, entryID)
}

// ListPlan returns today's plan entries.
func (s *Service) ListPlan(ctx context.Context) ([]PlanEntry, error) {
	return s.store.ListPlan(ctx)
}

// ClearPlan empties today's plan.
func (s *Service) ClearPlan(ctx context.Context) error {
	return s.store.ClearPlan(ctx)
}

// SaveDay persists the given activities as the snapshot for a date,
// overwriting any earlier snapshot for that date, and records the
// per-date distribution aggregate the calendar and chart views read.
func (s *Service) SaveDay(ctx context.Context, date string, activities []Activity) (*Snapshot, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	var drained, boosted float64
	for _, activity := range activities {
		switch activity.Kind {
		case KindDrain:
			drained += activity.Percentage
		case KindBoost:
			boosted += activity.Percentage
		}
	}

	snapshot := Snapshot{
		Date:         date,
		Activities:   activities,
		DrainedTotal: drained,
		BoostedTotal: boosted,
	}
	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	if err := s.store.SaveDistribution(ctx, DistributionPoint{Date: date, Drained: drained, Gave: boosted}); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetSnapshot reads back the snapshot for a date.
func (s *Service) GetSnapshot(ctx context.Context, date string) (*Snapshot, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	snapshot, err := s.store.GetSnapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrSnapshotNotFound
	}
	return snapshot, nil
}

// TodaysBoosts returns the boost activities from today's saved snapshot.
// A day without a snapshot yields an empty list, not an error.
func (s *Service) TodaysBoosts(ctx context.Context) ([]Activity, error) {
	snapshot, err := s.store.GetSnapshot(ctx, s.now().UTC().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return []Activity{}, nil
	}
	boosts := make([]Activity, 0, len(snapshot.Activities))
	for _, activity := range snapshot.Activities {
		if activity.Kind == KindBoost {
			boosts = append(boosts, activity)
		}
	}
	return boosts, nil
}

// SaveDistribution writes a per-date drained/gave aggregate directly.
func (s *Service) SaveDistribution(ctx context.Context, point DistributionPoint) error {
	if err := validateDate(point.Date); err != nil {
		return err
	}
	return s.store.SaveDistribution(ctx, point)
}

// Distribution returns all per-date aggregates ordered by date.
func (s *Service) Distribution(ctx context.Context) ([]DistributionPoint, error) {
	points, err := s.store.ListDistribution(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

// EnergyLevel reads the current energy scalar.
func (s *Service) EnergyLevel(ctx context.Context) (float64, error) {
	return s.store.EnergyLevel(ctx)
}

// SetEnergyLevel stores the energy scalar. The value is deliberately not
// clamped to [0,100]; overdrawn and overflowing days are representable.
func (s *Service) SetEnergyLevel(ctx context.Context, level float64) error {
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return &ValidationError{Field: "level", Reason: "must be a finite number"}
	}
	return s.store.SetEnergyLevel(ctx, level)
}
