package outbox

// Event types recorded by the repository and delivered by the Dispatcher.
const (
	EventActivityCreated = "activity.created"
	EventActivityDeleted = "activity.deleted"
	EventSnapshotSaved   = "snapshot.saved"
)

// Topic routing per event type. Activity lifecycle events share one topic
// partitioned by activity id; snapshot events get their own, partitioned
// by date so replays stay ordered per day.
var topicCatalog = map[string]string{
	EventActivityCreated: "energy_activity_events",
	EventActivityDeleted: "energy_activity_events",
	EventSnapshotSaved:   "energy_snapshot_events",
}

// TopicFor resolves the Kafka topic for an event type.
func TopicFor(eventType string) (string, bool) {
	topic, ok := topicCatalog[eventType]
	return topic, ok
}

// ActivityEvent is the JSON payload for activity lifecycle events.
type ActivityEvent struct {
	ActivityID string  `json:"activity_id"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Kind       string  `json:"kind"`
}

// SnapshotEvent is the JSON payload for snapshot.saved events.
type SnapshotEvent struct {
	Date         string  `json:"date"`
	DrainedTotal float64 `json:"drained_total"`
	BoostedTotal float64 `json:"boosted_total"`
	Activities   int     `json:"activities"`
}
