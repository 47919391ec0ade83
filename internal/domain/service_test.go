package domain_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/energy/internal/domain"
	"example.com/energy/internal/persistence/memory"
)

func newService(t *testing.T, opts ...domain.Option) *domain.Service {
	t.Helper()
	return domain.NewService(memory.NewStore(), opts...)
}

func TestCreateActivityValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	var validation *domain.ValidationError

	_, err := svc.CreateActivity(ctx, "", 50, domain.KindDrain)
	require.ErrorAs(t, err, &validation)

	_, err = svc.CreateActivity(ctx, "Nap", 150, domain.KindBoost)
	require.ErrorAs(t, err, &validation)

	_, err = svc.CreateActivity(ctx, "Nap", 40, "sideways")
	require.ErrorAs(t, err, &validation)

	created, err := svc.CreateActivity(ctx, "  Nap  ", 40, domain.KindBoost)
	require.NoError(t, err)
	require.Equal(t, "Nap", created.Name)
	require.NotEmpty(t, created.ID)

	activities, err := svc.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)
}

func TestUpdateActivityKeepsKind(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateActivity(ctx, "Meetings", 30, domain.KindDrain)
	require.NoError(t, err)

	updated, err := svc.UpdateActivity(ctx, created.ID, "Standups", 20)
	require.NoError(t, err)
	require.Equal(t, domain.KindDrain, updated.Kind)
	require.Equal(t, "Standups", updated.Name)

	_, err = svc.UpdateActivity(ctx, "missing", "x", 10)
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestCreatePairValidatesBothHalvesFirst(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// Invalid boost half must reject the whole pair before any write.
	_, err := svc.CreatePair(ctx,
		domain.PairInput{Name: "Overtime", Percentage: 70},
		domain.PairInput{Name: "", Percentage: 60},
	)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)

	activities, err := svc.ListActivities(ctx)
	require.NoError(t, err)
	require.Empty(t, activities)

	pair, err := svc.CreatePair(ctx,
		domain.PairInput{Name: "Overtime", Percentage: 70},
		domain.PairInput{Name: "Mentoring", Percentage: 60},
	)
	require.NoError(t, err)
	require.Equal(t, domain.KindDrain, pair.Drain.Kind)
	require.Equal(t, domain.KindBoost, pair.Boost.Kind)

	activities, err = svc.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 2)
}

func TestDeletePairRemovesBothActivities(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	pair, err := svc.CreatePair(ctx,
		domain.PairInput{Name: "Overtime", Percentage: 70},
		domain.PairInput{Name: "Mentoring", Percentage: 60},
	)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePair(ctx, pair.ID))

	activities, err := svc.ListActivities(ctx)
	require.NoError(t, err)
	require.Empty(t, activities)

	require.ErrorIs(t, svc.DeletePair(ctx, pair.ID), domain.ErrPairNotFound)
}

func TestPlanLifecycle(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	activity, err := svc.CreateActivity(ctx, "Walk", 15, domain.KindBoost)
	require.NoError(t, err)

	entry, err := svc.AddToPlan(ctx, activity.ID)
	require.NoError(t, err)
	require.NotEqual(t, activity.ID, entry.ID)

	_, err = svc.AddToPlan(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	entries, err := svc.ListPlan(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, svc.RemoveFromPlan(ctx, entry.ID))
	require.ErrorIs(t, svc.RemoveFromPlan(ctx, entry.ID), domain.ErrPlanEntryNotFound)

	_, err = svc.AddToPlan(ctx, activity.ID)
	require.NoError(t, err)
	require.NoError(t, svc.ClearPlan(ctx))

	entries, err = svc.ListPlan(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSaveDayComputesTotalsAndDistribution(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	activities := []domain.Activity{
		{ID: "a", Name: "Commute", Percentage: 30, Kind: domain.KindDrain},
		{ID: "b", Name: "Nap", Percentage: 20, Kind: domain.KindBoost},
	}

	snapshot, err := svc.SaveDay(ctx, "2026-08-27", activities)
	require.NoError(t, err)
	require.Equal(t, 30.0, snapshot.DrainedTotal)
	require.Equal(t, 20.0, snapshot.BoostedTotal)

	stored, err := svc.GetSnapshot(ctx, "2026-08-27")
	require.NoError(t, err)
	require.Equal(t, *snapshot, *stored)

	points, err := svc.Distribution(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.DistributionPoint{{Date: "2026-08-27", Drained: 30, Gave: 20}}, points)

	// Same-date save overwrites, last write wins.
	snapshot, err = svc.SaveDay(ctx, "2026-08-27", activities[:1])
	require.NoError(t, err)
	require.Zero(t, snapshot.BoostedTotal)

	stored, err = svc.GetSnapshot(ctx, "2026-08-27")
	require.NoError(t, err)
	require.Len(t, stored.Activities, 1)

	_, err = svc.SaveDay(ctx, "27/08/2026", nil)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestGetSnapshotMissingDate(t *testing.T) {
	svc := newService(t)
	_, err := svc.GetSnapshot(context.Background(), "1999-01-01")
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestTodaysBoosts(t *testing.T) {
	today := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	svc := newService(t, domain.WithClock(func() time.Time { return today }))
	ctx := context.Background()

	boosts, err := svc.TodaysBoosts(ctx)
	require.NoError(t, err)
	require.Empty(t, boosts)

	_, err = svc.SaveDay(ctx, "2026-08-27", []domain.Activity{
		{ID: "a", Name: "Commute", Percentage: 30, Kind: domain.KindDrain},
		{ID: "b", Name: "Nap", Percentage: 20, Kind: domain.KindBoost},
		{ID: "c", Name: "Walk", Percentage: 15, Kind: domain.KindBoost},
	})
	require.NoError(t, err)

	boosts, err = svc.TodaysBoosts(ctx)
	require.NoError(t, err)
	require.Len(t, boosts, 2)
	for _, activity := range boosts {
		require.Equal(t, domain.KindBoost, activity.Kind)
	}
}

func TestEnergyLevelUnclamped(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	level, err := svc.EnergyLevel(ctx)
	require.NoError(t, err)
	require.Equal(t, 100.0, level)

	require.NoError(t, svc.SetEnergyLevel(ctx, -35))
	level, err = svc.EnergyLevel(ctx)
	require.NoError(t, err)
	require.Equal(t, -35.0, level)

	require.NoError(t, svc.SetEnergyLevel(ctx, 180))

	var validation *domain.ValidationError
	require.ErrorAs(t, svc.SetEnergyLevel(ctx, math.NaN()), &validation)
}
