// Package domain defines the business logic for the energy budget service.
package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrActivityNotFound is returned when an activity cannot be located.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrPairNotFound is returned when a drain/boost pair cannot be located.
	ErrPairNotFound = errors.New("pair not found")
	// ErrPlanEntryNotFound is returned when a plan entry cannot be located.
	ErrPlanEntryNotFound = errors.New("plan entry not found")
	// ErrSnapshotNotFound is returned when no snapshot exists for a date.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// ValidationError reports rejected user input. It is raised before any
// storage call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Kind distinguishes activities that drain energy from ones that restore it.
type Kind string

const (
	KindDrain Kind = "drain"
	KindBoost Kind = "boost"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindDrain || k == KindBoost
}

// Activity is a named behavior carrying a percentage weight of perceived
// energy it drains or restores.
type Activity struct {
	ID         string
	Name       string
	Percentage float64
	Kind       Kind
}

// Pair links a draining behavior with the positive-reflection activity
// captured alongside it. The pair is indivisible at creation; its two
// activities are independently toggle-able afterward.
type Pair struct {
	ID    string
	Drain Activity
	Boost Activity
}

// PlanEntry is one activity toggled into today's plan. The entry carries
// its own identifier so a later toggle-off can address the deletion.
type PlanEntry struct {
	ID       string
	Activity Activity
}

// Snapshot is a persisted record of one day's finalized plan. Snapshots
// are written once per "close the day" action and never mutated, only
// read back for the calendar view. A second write for the same date
// overwrites the first.
type Snapshot struct {
	Date         string
	Activities   []Activity
	DrainedTotal float64
	BoostedTotal float64
}

// DistributionPoint is the per-date drained/gave aggregate feeding the
// calendar and chart views.
type DistributionPoint struct {
	Date    string
	Drained float64
	Gave    float64
}

// Store captures persistence operations for the service.
type Store interface {
	ListActivities(ctx context.Context) ([]Activity, error)
	CreateActivity(ctx context.Context, activity Activity) error
	UpdateActivity(ctx context.Context, activity Activity) error
	DeleteActivity(ctx context.Context, id string) error

	ListPairs(ctx context.Context) ([]Pair, error)
	CreatePair(ctx context.Context, pair Pair) error
	DeletePair(ctx context.Context, id string) error

	ListPlan(ctx context.Context) ([]PlanEntry, error)
	AddPlanEntry(ctx context.Context, entry PlanEntry) error
	RemovePlanEntry(ctx context.Context, id string) error
	ClearPlan(ctx context.Context) error

	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	GetSnapshot(ctx context.Context, date string) (*Snapshot, error)

	SaveDistribution(ctx context.Context, point DistributionPoint) error
	ListDistribution(ctx context.Context) ([]DistributionPoint, error)

	EnergyLevel(ctx context.Context) (float64, error)
	SetEnergyLevel(ctx context.Context, level float64) error
}
