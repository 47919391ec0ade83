// Package ledger maintains the client-side energy budget: the activity
// catalog, today's selection, and the running energy level. It applies
// changes locally first and reconciles with the remote API afterwards.
//
// A Ledger is not safe for concurrent use; it is meant to be driven by a
// single event loop such as a CLI command or a UI callback.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"example.com/energy/internal/client"
)

// Activity kinds as the API serialises them.
const (
	KindDrain = "drain"
	KindBoost = "boost"
)

// ErrNotFound reports an id that is no longer in the catalog or the
// selection.
var ErrNotFound = errors.New("not found")

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Remote is the slice of the API the ledger needs. *client.Client
// satisfies it.
type Remote interface {
	ListActivities(ctx context.Context) ([]client.Activity, error)
	CreateActivity(ctx context.Context, name string, percentage float64, kind string) (*client.Activity, error)
	UpdateActivity(ctx context.Context, id, name string, percentage float64) (*client.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
	CreatePair(ctx context.Context, drainName string, drainPct float64, boostName string, boostPct float64) (*client.Pair, error)
	ListPlan(ctx context.Context) ([]client.PlanEntry, error)
	AddToPlan(ctx context.Context, activityID string) (*client.PlanEntry, error)
	RemoveFromPlan(ctx context.Context, entryID string) error
	ClearPlan(ctx context.Context) error
	SaveDay(ctx context.Context, date string, activities []client.Activity) (*client.Snapshot, error)
	EnergyLevel(ctx context.Context) (float64, error)
	SetEnergyLevel(ctx context.Context, level float64) error
}

// SelectionEntry is one toggled activity. It captures the activity's
// fields at toggle time, so a later edit or delete of the catalog entry
// does not silently rewrite today's totals.
type SelectionEntry struct {
	ActivityID  string
	PlanEntryID string
	Name        string
	Percentage  float64
	Kind        string
	Done        bool
}

// Totals aggregates the current selection.
type Totals struct {
	TotalDrain float64
	TotalBoost float64
	Net        float64
}

// Ledger is the client-side state container.
type Ledger struct {
	remote    Remote
	catalog   []client.Activity
	selection []SelectionEntry
	energy    float64
	seq       map[string]uint64
	nextSeq   uint64
}

// New creates an empty Ledger backed by the given remote. The energy
// level starts at 100 until Refresh pulls the persisted value.
func New(remote Remote) *Ledger {
	return &Ledger{
		remote: remote,
		energy: 100,
		seq:    make(map[string]uint64),
	}
}

// Refresh replaces local state with what the server has: catalog, plan
// and energy level. Done flags are local-only and reset.
func (l *Ledger) Refresh(ctx context.Context) error {
	activities, err := l.remote.ListActivities(ctx)
	if err != nil {
		return fmt.Errorf("refresh activities: %w", err)
	}
	entries, err := l.remote.ListPlan(ctx)
	if err != nil {
		return fmt.Errorf("refresh plan: %w", err)
	}
	energy, err := l.remote.EnergyLevel(ctx)
	if err != nil {
		return fmt.Errorf("refresh energy: %w", err)
	}

	l.catalog = activities
	l.selection = l.selection[:0]
	for _, entry := range entries {
		l.selection = append(l.selection, SelectionEntry{
			ActivityID:  entry.Activity.ID,
			PlanEntryID: entry.ID,
			Name:        entry.Activity.Name,
			Percentage:  entry.Activity.Percentage,
			Kind:        entry.Activity.Type,
		})
	}
	l.energy = energy
	l.invalidatePending()
	return nil
}

// RestoreFromCache seeds the ledger with locally persisted state when
// the server cannot be reached. Restored selection entries carry only
// the activity id; name, percentage and kind are reconciled by the next
// successful Refresh. Nothing is written remotely.
func (l *Ledger) RestoreFromCache(energy float64, activityIDs []string) {
	l.energy = energy
	l.selection = l.selection[:0]
	for _, id := range activityIDs {
		l.selection = append(l.selection, SelectionEntry{ActivityID: id})
	}
}

// List returns catalog activities of one kind. Selected items sort to
// the front; relative order is preserved within each group. The order is
// derived on every call, never stored.
func (l *Ledger) List(kind string) []client.Activity {
	var selected, unselected []client.Activity
	for _, activity := range l.catalog {
		if activity.Type != kind {
			continue
		}
		if l.findSelection(activity.ID) >= 0 {
			selected = append(selected, activity)
		} else {
			unselected = append(unselected, activity)
		}
	}
	return append(selected, unselected...)
}

// Selection returns today's plan entries in toggle order, with entries
// marked done sunk to the bottom.
func (l *Ledger) Selection() []SelectionEntry {
	out := make([]SelectionEntry, 0, len(l.selection))
	for _, entry := range l.selection {
		if !entry.Done {
			out = append(out, entry)
		}
	}
	for _, entry := range l.selection {
		if entry.Done {
			out = append(out, entry)
		}
	}
	return out
}

// Create validates the input, asks the server for an id, and appends the
// new activity to the catalog. Nothing is applied locally until the
// server confirms, because an unconfirmed activity has no id to address.
func (l *Ledger) Create(ctx context.Context, name string, percentage float64, kind string) (*client.Activity, error) {
	if err := validateActivity(name, percentage, kind); err != nil {
		return nil, err
	}

	created, err := l.remote.CreateActivity(ctx, strings.TrimSpace(name), percentage, kind)
	if err != nil {
		return nil, err
	}
	l.catalog = append(l.catalog, *created)
	return created, nil
}

// Update overwrites name and percentage locally, then pushes the change.
// If the push fails the local edit stays; the next Refresh reconciles.
func (l *Ledger) Update(ctx context.Context, id, name string, percentage float64) (*client.Activity, error) {
	idx := l.findCatalog(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	if err := validateActivity(name, percentage, l.catalog[idx].Type); err != nil {
		return nil, err
	}

	l.catalog[idx].Name = strings.TrimSpace(name)
	l.catalog[idx].Percentage = percentage

	op := l.begin(id)
	updated, err := l.remote.UpdateActivity(ctx, id, l.catalog[idx].Name, percentage)
	if err != nil {
		log.Printf("update activity %s: %v (keeping local edit)", id, err)
		return &l.catalog[idx], nil
	}
	l.confirm(op, func() {
		if idx := l.findCatalog(id); idx >= 0 {
			l.catalog[idx] = *updated
		}
	})
	return updated, nil
}

// Delete removes the activity from the catalog immediately, then issues
// the remote delete. A remote failure is logged, not rolled back.
// Selection entries that reference the activity keep counting toward
// totals until ClearSelection or Refresh.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	idx := l.findCatalog(id)
	if idx < 0 {
		return ErrNotFound
	}
	l.catalog = append(l.catalog[:idx], l.catalog[idx+1:]...)

	if err := l.remote.DeleteActivity(ctx, id); err != nil {
		log.Printf("delete activity %s: %v", id, err)
	}
	return nil
}

// Toggle flips the selection state of a catalog activity. Toggling on
// applies the signed percentage to the energy level; toggling off
// reverses the contribution captured at toggle time, so toggle twice is
// an exact identity.
func (l *Ledger) Toggle(ctx context.Context, activityID string) error {
	if idx := l.findSelection(activityID); idx >= 0 {
		entry := l.selection[idx]
		l.selection = append(l.selection[:idx], l.selection[idx+1:]...)
		l.energy -= signed(entry.Kind, entry.Percentage)
		l.persistEnergy(ctx)

		if entry.PlanEntryID != "" {
			if err := l.remote.RemoveFromPlan(ctx, entry.PlanEntryID); err != nil {
				log.Printf("remove plan entry %s: %v", entry.PlanEntryID, err)
			}
		}
		return nil
	}

	idx := l.findCatalog(activityID)
	if idx < 0 {
		return ErrNotFound
	}
	activity := l.catalog[idx]

	entry := SelectionEntry{
		ActivityID: activity.ID,
		Name:       activity.Name,
		Percentage: activity.Percentage,
		Kind:       activity.Type,
	}
	l.selection = append(l.selection, entry)
	l.energy += signed(activity.Type, activity.Percentage)
	l.persistEnergy(ctx)

	op := l.begin("plan/" + activityID)
	created, err := l.remote.AddToPlan(ctx, activityID)
	if err != nil {
		log.Printf("add plan entry for %s: %v", activityID, err)
		return nil
	}
	l.confirm(op, func() {
		if idx := l.findSelection(activityID); idx >= 0 {
			l.selection[idx].PlanEntryID = created.ID
		}
	})
	return nil
}

// MarkDone sets the local done flag on a selection entry. The flag never
// leaves this process.
func (l *Ledger) MarkDone(activityID string, done bool) error {
	idx := l.findSelection(activityID)
	if idx < 0 {
		return ErrNotFound
	}
	l.selection[idx].Done = done
	return nil
}

// Totals aggregates the current selection. Pure: no I/O, no mutation.
func (l *Ledger) Totals() Totals {
	var totals Totals
	for _, entry := range l.selection {
		switch entry.Kind {
		case KindDrain:
			totals.TotalDrain += entry.Percentage
		case KindBoost:
			totals.TotalBoost += entry.Percentage
		}
	}
	totals.Net = totals.TotalBoost - totals.TotalDrain
	return totals
}

// ClearSelection empties the selection without touching the energy
// level. The two are independent pieces of state.
func (l *Ledger) ClearSelection() {
	l.selection = l.selection[:0]
}

// NewDay clears the selection locally and on the server. The energy
// level carries over; only an explicit SetEnergy resets it.
func (l *Ledger) NewDay(ctx context.Context) error {
	l.ClearSelection()
	if err := l.remote.ClearPlan(ctx); err != nil {
		log.Printf("clear remote plan: %v", err)
	}
	return nil
}

// SaveDay persists the current selection as a snapshot for the given
// date, then starts a fresh day.
func (l *Ledger) SaveDay(ctx context.Context, date string) (*client.Snapshot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}

	activities := make([]client.Activity, 0, len(l.selection))
	for _, entry := range l.selection {
		activities = append(activities, client.Activity{
			ID:         entry.ActivityID,
			Name:       entry.Name,
			Percentage: entry.Percentage,
			Type:       entry.Kind,
		})
	}

	snapshot, err := l.remote.SaveDay(ctx, date, activities)
	if err != nil {
		return nil, err
	}
	return snapshot, l.NewDay(ctx)
}

// Energy returns the current energy level.
func (l *Ledger) Energy() float64 {
	return l.energy
}

// SetEnergy overwrites the energy level locally and remotely.
func (l *Ledger) SetEnergy(ctx context.Context, level float64) error {
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return &ValidationError{Field: "level", Reason: "must be a finite number"}
	}
	l.energy = level
	l.persistEnergy(ctx)
	return nil
}

// Catalog returns all cached activities in insertion order.
func (l *Ledger) Catalog() []client.Activity {
	return l.catalog
}

func (l *Ledger) persistEnergy(ctx context.Context) {
	if err := l.remote.SetEnergyLevel(ctx, l.energy); err != nil {
		log.Printf("persist energy level: %v", err)
	}
}

func (l *Ledger) findCatalog(id string) int {
	for i, activity := range l.catalog {
		if activity.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) findSelection(activityID string) int {
	for i, entry := range l.selection {
		if entry.ActivityID == activityID {
			return i
		}
	}
	return -1
}

func signed(kind string, percentage float64) float64 {
	if kind == KindBoost {
		return percentage
	}
	return -percentage
}

func validateActivity(name string, percentage float64, kind string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) {
		return &ValidationError{Field: "percentage", Reason: "must be a finite number"}
	}
	if percentage < 0 || percentage > 100 {
		return &ValidationError{Field: "percentage", Reason: "must be between 0 and 100"}
	}
	if kind != KindDrain && kind != KindBoost {
		return &ValidationError{Field: "kind", Reason: "must be drain or boost"}
	}
	return nil
}
