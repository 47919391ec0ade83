package api

import "example.com/energy/internal/domain"

// ActivityRequest is the payload for creating or updating an activity.
type ActivityRequest struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Type       string  `json:"type"`
}

// ActivityView exposes one catalog activity. The `_id` key is what the
// mobile front-end already expects.
type ActivityView struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Type       string  `json:"type"`
}

// PairRequest is the payload for POST /contra-pro-pair-test.
type PairRequest struct {
	DrainActivity PairHalfRequest `json:"drainActivity"`
	BoostActivity PairHalfRequest `json:"boostActivity"`
}

// PairHalfRequest is one side of a pair creation request.
type PairHalfRequest struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// PairView exposes a drain/boost pair with both created activities.
type PairView struct {
	ID            string       `json:"_id"`
	DrainActivity ActivityView `json:"drainActivity"`
	BoostActivity ActivityView `json:"boostActivity"`
}

// AddPlanEntryRequest is the payload for POST /todays-activities.
type AddPlanEntryRequest struct {
	ActivityID string `json:"activityId"`
}

// PlanEntryView exposes one entry of today's plan.
type PlanEntryView struct {
	ID       string       `json:"_id"`
	Activity ActivityView `json:"activity"`
}

// SaveDayRequest is the payload for POST /saved-todays-activities.
type SaveDayRequest struct {
	Date       string         `json:"date"`
	Activities []ActivityView `json:"activities"`
}

// SnapshotView exposes a persisted daily snapshot.
type SnapshotView struct {
	Date         string         `json:"date"`
	Activities   []ActivityView `json:"activities"`
	DrainedTotal float64        `json:"drainedTotal"`
	BoostedTotal float64        `json:"boostedTotal"`
}

// EnergyLevelView carries the energy scalar on both read and write.
type EnergyLevelView struct {
	Level float64 `json:"level"`
}

// DistributionView exposes a per-date drained/gave aggregate.
type DistributionView struct {
	Date    string  `json:"date"`
	Drained float64 `json:"drained"`
	Gave    float64 `json:"gave"`
}

func toActivityView(activity domain.Activity) ActivityView {
	return ActivityView{
		ID:         activity.ID,
		Name:       activity.Name,
		Percentage: activity.Percentage,
		Type:       string(activity.Kind),
	}
}

func fromActivityView(view ActivityView) domain.Activity {
	return domain.Activity{
		ID:         view.ID,
		Name:       view.Name,
		Percentage: view.Percentage,
		Kind:       domain.Kind(view.Type),
	}
}

func toPairView(pair domain.Pair) PairView {
	return PairView{
		ID:            pair.ID,
		DrainActivity: toActivityView(pair.Drain),
		BoostActivity: toActivityView(pair.Boost),
	}
}

func toPlanEntryView(entry domain.PlanEntry) PlanEntryView {
	return PlanEntryView{
		ID:       entry.ID,
		Activity: toActivityView(entry.Activity),
	}
}

func toSnapshotView(snapshot domain.Snapshot) SnapshotView {
	views := make([]ActivityView, 0, len(snapshot.Activities))
	for _, activity := range snapshot.Activities {
		views = append(views, toActivityView(activity))
	}
	return SnapshotView{
		Date:         snapshot.Date,
		Activities:   views,
		DrainedTotal: snapshot.DrainedTotal,
		BoostedTotal: snapshot.BoostedTotal,
	}
}
