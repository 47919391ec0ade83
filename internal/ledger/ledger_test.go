package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/energy/internal/client"
)

func TestToggleTwiceIsIdentity(t *testing.T) {
	l, _ := newTestLedger(t)

	activity := mustCreate(t, l, "Meetings", 30, KindDrain)
	before := l.Energy()

	require.NoError(t, l.Toggle(context.Background(), activity.ID))
	require.Equal(t, before-30, l.Energy())
	require.Len(t, l.Selection(), 1)

	require.NoError(t, l.Toggle(context.Background(), activity.ID))
	require.Equal(t, before, l.Energy())
	require.Empty(t, l.Selection())
}

func TestTotals(t *testing.T) {
	l, _ := newTestLedger(t)

	drain := mustCreate(t, l, "Commute", 30, KindDrain)
	boost := mustCreate(t, l, "Nap", 20, KindBoost)

	require.NoError(t, l.Toggle(context.Background(), drain.ID))
	require.NoError(t, l.Toggle(context.Background(), boost.ID))

	totals := l.Totals()
	require.Equal(t, 30.0, totals.TotalDrain)
	require.Equal(t, 20.0, totals.TotalBoost)
	require.Equal(t, -10.0, totals.Net)
}

func TestListSortsSelectedToFront(t *testing.T) {
	l, _ := newTestLedger(t)

	a := mustCreate(t, l, "A", 10, KindDrain)
	b := mustCreate(t, l, "B", 10, KindDrain)
	c := mustCreate(t, l, "C", 10, KindDrain)
	d := mustCreate(t, l, "D", 10, KindDrain)

	require.NoError(t, l.Toggle(context.Background(), b.ID))
	require.NoError(t, l.Toggle(context.Background(), d.ID))

	var names []string
	for _, activity := range l.List(KindDrain) {
		names = append(names, activity.Name)
	}
	require.Equal(t, []string{"B", "D", "A", "C"}, names)

	// Order is derived, not stored: the catalog itself keeps insertion order.
	require.Equal(t, []string{a.Name, b.Name, c.Name, d.Name}, catalogNames(l))
}

func TestCreateValidation(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	var validation *ValidationError

	_, err := l.Create(ctx, "", 50, KindDrain)
	require.ErrorAs(t, err, &validation)

	_, err = l.Create(ctx, "Nap", 150, KindBoost)
	require.ErrorAs(t, err, &validation)

	created, err := l.Create(ctx, "Nap", 40, KindBoost)
	require.NoError(t, err)

	boosts := l.List(KindBoost)
	require.Len(t, boosts, 1)
	require.Equal(t, created.ID, boosts[0].ID)
}

func TestPairFlowCommitAndToggle(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	flow := NewPairFlow()
	require.NoError(t, flow.Advance("Overtime"))
	require.NoError(t, flow.Advance("70"))
	require.NoError(t, flow.Advance("Mentoring"))
	require.NoError(t, flow.Advance("60"))
	require.True(t, flow.Ready())

	result, err := flow.Commit(ctx, l)
	require.NoError(t, err)
	require.Equal(t, StepDrainName, flow.Step())

	before := l.Energy()
	require.NoError(t, l.Toggle(ctx, result.Drain))
	require.Equal(t, before-70, l.Energy())
	require.NoError(t, l.Toggle(ctx, result.Boost))
	require.Equal(t, before-70+60, l.Energy())
}

func TestPairFlowGuards(t *testing.T) {
	flow := NewPairFlow()
	var validation *ValidationError

	require.ErrorAs(t, flow.Advance("   "), &validation)
	require.Equal(t, StepDrainName, flow.Step())

	require.NoError(t, flow.Advance("Overtime"))
	require.ErrorAs(t, flow.Advance("lots"), &validation)
	require.ErrorAs(t, flow.Advance("120"), &validation)
	require.Equal(t, StepDrainPercentage, flow.Step())

	_, err := flow.Commit(context.Background(), New(newFakeRemote()))
	require.ErrorAs(t, err, &validation)
}

func TestDeletedActivityStaysCountedUntilClear(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	activity := mustCreate(t, l, "Doomscrolling", 25, KindDrain)
	require.NoError(t, l.Toggle(ctx, activity.ID))
	require.NoError(t, l.Delete(ctx, activity.ID))

	// Gone from the catalog listing.
	require.Empty(t, l.List(KindDrain))

	// Still counted: the selection captured the percentage at toggle time.
	require.Equal(t, 25.0, l.Totals().TotalDrain)

	l.ClearSelection()
	require.Zero(t, l.Totals().TotalDrain)
}

func TestClearSelectionKeepsEnergy(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	boost := mustCreate(t, l, "Walk", 15, KindBoost)
	require.NoError(t, l.Toggle(ctx, boost.ID))
	require.Equal(t, 115.0, l.Energy())

	l.ClearSelection()
	require.Empty(t, l.Selection())
	require.Equal(t, 115.0, l.Energy())
}

func TestNewDayClearsSelectionLocallyAndRemotely(t *testing.T) {
	l, remote := newTestLedger(t)
	ctx := context.Background()

	boost := mustCreate(t, l, "Walk", 15, KindBoost)
	require.NoError(t, l.Toggle(ctx, boost.ID))

	require.NoError(t, l.NewDay(ctx))
	require.Empty(t, l.Selection())
	require.Empty(t, remote.plan)
	require.Equal(t, 115.0, l.Energy())
}

func TestUpdateKeepsLocalEditOnRemoteFailure(t *testing.T) {
	l, remote := newTestLedger(t)
	ctx := context.Background()

	activity := mustCreate(t, l, "Meetings", 30, KindDrain)
	remote.fail = true

	updated, err := l.Update(ctx, activity.ID, "Standups", 20)
	require.NoError(t, err)
	require.Equal(t, "Standups", updated.Name)
	require.Equal(t, 20.0, updated.Percentage)

	require.Equal(t, "Standups", l.List(KindDrain)[0].Name)
}

func TestUpdateUnknownID(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.Update(context.Background(), "missing", "x", 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestToggleCapturesPercentageBeforeEdit(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	activity := mustCreate(t, l, "Meetings", 30, KindDrain)
	require.NoError(t, l.Toggle(ctx, activity.ID))

	_, err := l.Update(ctx, activity.ID, "Meetings", 90)
	require.NoError(t, err)

	// Toggle-off reverses the captured 30, not the edited 90.
	require.NoError(t, l.Toggle(ctx, activity.ID))
	require.Equal(t, 100.0, l.Energy())
}

func TestMarkDoneSinksEntry(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	first := mustCreate(t, l, "First", 10, KindDrain)
	second := mustCreate(t, l, "Second", 10, KindDrain)
	require.NoError(t, l.Toggle(ctx, first.ID))
	require.NoError(t, l.Toggle(ctx, second.ID))

	require.NoError(t, l.MarkDone(first.ID, true))

	entries := l.Selection()
	require.Equal(t, second.ID, entries[0].ActivityID)
	require.Equal(t, first.ID, entries[1].ActivityID)
	require.True(t, entries[1].Done)
}

func TestSaveDayPersistsSnapshotAndResets(t *testing.T) {
	l, remote := newTestLedger(t)
	ctx := context.Background()

	drain := mustCreate(t, l, "Commute", 30, KindDrain)
	boost := mustCreate(t, l, "Nap", 20, KindBoost)
	require.NoError(t, l.Toggle(ctx, drain.ID))
	require.NoError(t, l.Toggle(ctx, boost.ID))

	snapshot, err := l.SaveDay(ctx, "2026-08-27")
	require.NoError(t, err)
	require.Equal(t, 30.0, snapshot.DrainedTotal)
	require.Equal(t, 20.0, snapshot.BoostedTotal)

	require.Empty(t, l.Selection())
	require.Empty(t, remote.plan)

	var validation *ValidationError
	_, err = l.SaveDay(ctx, "27/08/2026")
	require.ErrorAs(t, err, &validation)
}

func TestRefreshReplacesLocalState(t *testing.T) {
	l, remote := newTestLedger(t)
	ctx := context.Background()

	activity := mustCreate(t, l, "Walk", 15, KindBoost)
	require.NoError(t, l.Toggle(ctx, activity.ID))
	remote.energy = 42

	fresh := New(remote)
	require.NoError(t, fresh.Refresh(ctx))

	require.Len(t, fresh.Catalog(), 1)
	require.Len(t, fresh.Selection(), 1)
	require.Equal(t, activity.ID, fresh.Selection()[0].ActivityID)
	require.Equal(t, 42.0, fresh.Energy())
}

func TestClassifyNet(t *testing.T) {
	require.Equal(t, BandCritical, ClassifyNet(-10))
	require.Equal(t, BandCritical, ClassifyNet(0))
	require.Equal(t, BandLow, ClassifyNet(1))
	require.Equal(t, BandLow, ClassifyNet(40))
	require.Equal(t, BandModerate, ClassifyNet(41))
	require.Equal(t, BandModerate, ClassifyNet(70))
	require.Equal(t, BandGood, ClassifyNet(71))
	require.NotEmpty(t, BandGood.Message())
}

func newTestLedger(t *testing.T) (*Ledger, *fakeRemote) {
	t.Helper()
	remote := newFakeRemote()
	return New(remote), remote
}

func mustCreate(t *testing.T, l *Ledger, name string, percentage float64, kind string) *client.Activity {
	t.Helper()
	activity, err := l.Create(context.Background(), name, percentage, kind)
	require.NoError(t, err)
	return activity
}

func catalogNames(l *Ledger) []string {
	var names []string
	for _, activity := range l.Catalog() {
		names = append(names, activity.Name)
	}
	return names
}

// fakeRemote is an in-memory Remote with a switchable failure mode.
type fakeRemote struct {
	nextID     int
	activities []client.Activity
	plan       []client.PlanEntry
	snapshots  map[string]client.Snapshot
	energy     float64
	fail       bool
}

var errRemote = errors.New("remote unavailable")

func newFakeRemote() *fakeRemote {
	return &fakeRemote{snapshots: make(map[string]client.Snapshot), energy: 100}
}

func (f *fakeRemote) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeRemote) ListActivities(context.Context) ([]client.Activity, error) {
	if f.fail {
		return nil, errRemote
	}
	return append([]client.Activity(nil), f.activities...), nil
}

func (f *fakeRemote) CreateActivity(_ context.Context, name string, percentage float64, kind string) (*client.Activity, error) {
	if f.fail {
		return nil, errRemote
	}
	activity := client.Activity{ID: f.id(), Name: name, Percentage: percentage, Type: kind}
	f.activities = append(f.activities, activity)
	return &activity, nil
}

func (f *fakeRemote) UpdateActivity(_ context.Context, id, name string, percentage float64) (*client.Activity, error) {
	if f.fail {
		return nil, errRemote
	}
	for i := range f.activities {
		if f.activities[i].ID == id {
			f.activities[i].Name = name
			f.activities[i].Percentage = percentage
			return &f.activities[i], nil
		}
	}
	return nil, errRemote
}

func (f *fakeRemote) DeleteActivity(_ context.Context, id string) error {
	if f.fail {
		return errRemote
	}
	for i := range f.activities {
		if f.activities[i].ID == id {
			f.activities = append(f.activities[:i], f.activities[i+1:]...)
			return nil
		}
	}
	return errRemote
}

func (f *fakeRemote) CreatePair(_ context.Context, drainName string, drainPct float64, boostName string, boostPct float64) (*client.Pair, error) {
	if f.fail {
		return nil, errRemote
	}
	drain := client.Activity{ID: f.id(), Name: drainName, Percentage: drainPct, Type: KindDrain}
	boost := client.Activity{ID: f.id(), Name: boostName, Percentage: boostPct, Type: KindBoost}
	f.activities = append(f.activities, drain, boost)
	return &client.Pair{ID: f.id(), DrainActivity: drain, BoostActivity: boost}, nil
}

func (f *fakeRemote) ListPlan(context.Context) ([]client.PlanEntry, error) {
	if f.fail {
		return nil, errRemote
	}
	return append([]client.PlanEntry(nil), f.plan...), nil
}

func (f *fakeRemote) AddToPlan(_ context.Context, activityID string) (*client.PlanEntry, error) {
	if f.fail {
		return nil, errRemote
	}
	for _, activity := range f.activities {
		if activity.ID == activityID {
			entry := client.PlanEntry{ID: f.id(), Activity: activity}
			f.plan = append(f.plan, entry)
			return &entry, nil
		}
	}
	return nil, errRemote
}

func (f *fakeRemote) RemoveFromPlan(_ context.Context, entryID string) error {
	if f.fail {
		return errRemote
	}
	for i := range f.plan {
		if f.plan[i].ID == entryID {
			f.plan = append(f.plan[:i], f.plan[i+1:]...)
			return nil
		}
	}
	return errRemote
}

func (f *fakeRemote) ClearPlan(context.Context) error {
	if f.fail {
		return errRemote
	}
	f.plan = nil
	return nil
}

func (f *fakeRemote) SaveDay(_ context.Context, date string, activities []client.Activity) (*client.Snapshot, error) {
	if f.fail {
		return nil, errRemote
	}
	snapshot := client.Snapshot{Date: date, Activities: activities}
	for _, activity := range activities {
		if activity.Type == KindDrain {
			snapshot.DrainedTotal += activity.Percentage
		} else {
			snapshot.BoostedTotal += activity.Percentage
		}
	}
	f.snapshots[date] = snapshot
	return &snapshot, nil
}

func (f *fakeRemote) EnergyLevel(context.Context) (float64, error) {
	if f.fail {
		return 0, errRemote
	}
	return f.energy, nil
}

func (f *fakeRemote) SetEnergyLevel(_ context.Context, level float64) error {
	if f.fail {
		return errRemote
	}
	f.energy = level
	return nil
}
