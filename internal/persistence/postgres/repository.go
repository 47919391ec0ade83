// Package postgres provides pgx-backed persistence for the energy budget
// service, including transactional outbox writes.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/energy/internal/domain"
	"example.com/energy/internal/outbox"
)

// Repository provides Postgres-backed persistence for the catalog, plan,
// snapshots, distribution and the outbox.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListActivities returns the catalog in insertion order.
func (r *Repository) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	const query = `SELECT activity_id, name, percentage, kind
        FROM activities ORDER BY created_at, activity_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(&activity.ID, &activity.Name, &activity.Percentage, &activity.Kind); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

// CreateActivity persists the activity and records an outbox event inside
// a single transaction.
func (r *Repository) CreateActivity(ctx context.Context, activity domain.Activity) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	if err = insertActivity(ctx, tx, activity); err != nil {
		return err
	}
	if err = insertActivityEvent(ctx, tx, outbox.EventActivityCreated, activity); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	return err
}

func insertActivity(ctx context.Context, tx pgx.Tx, activity domain.Activity) error {
	const stmt = `INSERT INTO activities (activity_id, name, percentage, kind, created_at, updated_at)
        VALUES ($1,$2,$3,$4,NOW(),NOW())`
	_, err := tx.Exec(ctx, stmt, activity.ID, activity.Name, activity.Percentage, activity.Kind)
	return err
}

// UpdateActivity overwrites name and percentage for an existing activity.
func (r *Repository) UpdateActivity(ctx context.Context, activity domain.Activity) error {
	const stmt = `UPDATE activities SET name=$2, percentage=$3, updated_at=NOW()
        WHERE activity_id=$1`

	tag, err := r.pool.Exec(ctx, stmt, activity.ID, activity.Name, activity.Percentage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

// DeleteActivity removes the activity and records an outbox event.
func (r *Repository) DeleteActivity(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	var activity domain.Activity
	row := tx.QueryRow(ctx, `SELECT activity_id, name, percentage, kind FROM activities WHERE activity_id=$1`, id)
	if err = row.Scan(&activity.ID, &activity.Name, &activity.Percentage, &activity.Kind); err != nil {
		if err == pgx.ErrNoRows {
			err = nil
			tx.Rollback(ctx)
			return domain.ErrActivityNotFound
		}
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM activities WHERE activity_id=$1`, id); err != nil {
		return err
	}
	if err = insertActivityEvent(ctx, tx, outbox.EventActivityDeleted, activity); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	return err
}

// ListPairs returns all pairs with both activity halves resolved.
func (r *Repository) ListPairs(ctx context.Context) ([]domain.Pair, error) {
	const query = `SELECT p.pair_id,
            d.activity_id, d.name, d.percentage, d.kind,
            b.activity_id, b.name, b.percentage, b.kind
        FROM activity_pairs p
        JOIN activities d ON d.activity_id = p.drain_activity_id
        JOIN activities b ON b.activity_id = p.boost_activity_id
        ORDER BY p.created_at, p.pair_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []domain.Pair
	for rows.Next() {
		var pair domain.Pair
		if err := rows.Scan(
			&pair.ID,
			&pair.Drain.ID, &pair.Drain.Name, &pair.Drain.Percentage, &pair.Drain.Kind,
			&pair.Boost.ID, &pair.Boost.Name, &pair.Boost.Percentage, &pair.Boost.Kind,
		); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, rows.Err()
}

// CreatePair inserts both activities and the pair row in one transaction,
// with an outbox event per created activity.
func (r *Repository) CreatePair(ctx context.Context, pair domain.Pair) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	for _, activity := range []domain.Activity{pair.Drain, pair.Boost} {
		if err = insertActivity(ctx, tx, activity); err != nil {
			return err
		}
		if err = insertActivityEvent(ctx, tx, outbox.EventActivityCreated, activity); err != nil {
			return err
		}
	}

	const stmt = `INSERT INTO activity_pairs (pair_id, drain_activity_id, boost_activity_id, created_at)
        VALUES ($1,$2,$3,NOW())`
	if _, err = tx.Exec(ctx, stmt, pair.ID, pair.Drain.ID, pair.Boost.ID); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	return err
}

// DeletePair removes the pair row and both of its activities.
func (r *Repository) DeletePair(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	var drainID, boostID string
	row := tx.QueryRow(ctx, `SELECT drain_activity_id, boost_activity_id FROM activity_pairs WHERE pair_id=$1`, id)
	if err = row.Scan(&drainID, &boostID); err != nil {
		if err == pgx.ErrNoRows {
			err = nil
			tx.Rollback(ctx)
			return domain.ErrPairNotFound
		}
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM activity_pairs WHERE pair_id=$1`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM activities WHERE activity_id = ANY($1)`, []string{drainID, boostID}); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	return err
}

// ListPlan returns today's plan entries in toggle order. Entries carry a
// copy of the activity as it looked at toggle time.
func (r *Repository) ListPlan(ctx context.Context) ([]domain.PlanEntry, error) {
	const query = `SELECT entry_id, activity_id, name, percentage, kind
        FROM todays_plan ORDER BY added_at, entry_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PlanEntry
	for rows.Next() {
		var entry domain.PlanEntry
		if err := rows.Scan(&entry.ID, &entry.Activity.ID, &entry.Activity.Name, &entry.Activity.Percentage, &entry.Activity.Kind); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AddPlanEntry records one toggled activity.
func (r *Repository) AddPlanEntry(ctx context.Context, entry domain.PlanEntry) error {
	const stmt = `INSERT INTO todays_plan (entry_id, activity_id, name, percentage, kind, added_at)
        VALUES ($1,$2,$3,$4,$5,NOW())`
	_, err := r.pool.Exec(ctx, stmt, entry.ID, entry.Activity.ID, entry.Activity.Name, entry.Activity.Percentage, entry.Activity.Kind)
	return err
}

// RemovePlanEntry drops one plan entry by its entry id.
func (r *Repository) RemovePlanEntry(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todays_plan WHERE entry_id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanEntryNotFound
	}
	return nil
}

// ClearPlan empties today's plan.
func (r *Repository) ClearPlan(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM todays_plan`)
	return err
}

// SaveSnapshot upserts the snapshot for a date and records an outbox
// event. The activity list is stored as JSON; snapshots are read back
// whole, never queried by field.
func (r *Repository) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	body, err := json.Marshal(snapshot.Activities)
	if err != nil {
		return err
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const stmt = `INSERT INTO daily_snapshots (snapshot_date, activities, drained_total, boosted_total, created_at)
        VALUES ($1,$2,$3,$4,NOW())
        ON CONFLICT (snapshot_date) DO UPDATE
        SET activities=EXCLUDED.activities,
            drained_total=EXCLUDED.drained_total,
            boosted_total=EXCLUDED.boosted_total,
            created_at=NOW()`
	if _, err = tx.Exec(ctx, stmt, snapshot.Date, body, snapshot.DrainedTotal, snapshot.BoostedTotal); err != nil {
		return err
	}

	payload, err := json.Marshal(outbox.SnapshotEvent{
		Date:         snapshot.Date,
		DrainedTotal: snapshot.DrainedTotal,
		BoostedTotal: snapshot.BoostedTotal,
		Activities:   len(snapshot.Activities),
	})
	if err != nil {
		return err
	}
	if err = insertOutbox(ctx, tx, outbox.EventSnapshotSaved, snapshot.Date, payload); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	return err
}

// GetSnapshot reads the snapshot for a date; (nil, nil) when absent.
func (r *Repository) GetSnapshot(ctx context.Context, date string) (*domain.Snapshot, error) {
	const query = `SELECT snapshot_date, activities, drained_total, boosted_total
        FROM daily_snapshots WHERE snapshot_date=$1`

	var snapshot domain.Snapshot
	var body []byte
	row := r.pool.QueryRow(ctx, query, date)
	if err := row.Scan(&snapshot.Date, &body, &snapshot.DrainedTotal, &snapshot.BoostedTotal); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(body, &snapshot.Activities); err != nil {
		return nil, fmt.Errorf("decode snapshot activities: %w", err)
	}
	return &snapshot, nil
}

// SaveDistribution upserts the per-date drained/gave aggregate.
func (r *Repository) SaveDistribution(ctx context.Context, point domain.DistributionPoint) error {
	const stmt = `INSERT INTO resources_distribution (dist_date, drained, gave)
        VALUES ($1,$2,$3)
        ON CONFLICT (dist_date) DO UPDATE
        SET drained=EXCLUDED.drained, gave=EXCLUDED.gave`
	_, err := r.pool.Exec(ctx, stmt, point.Date, point.Drained, point.Gave)
	return err
}

// ListDistribution returns every per-date aggregate.
func (r *Repository) ListDistribution(ctx context.Context) ([]domain.DistributionPoint, error) {
	rows, err := r.pool.Query(ctx, `SELECT dist_date, drained, gave FROM resources_distribution`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.DistributionPoint
	for rows.Next() {
		var point domain.DistributionPoint
		if err := rows.Scan(&point.Date, &point.Drained, &point.Gave); err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, rows.Err()
}

// EnergyLevel reads the energy scalar. The singleton row defaults to 100
// in the migration, so a fresh database reads back a full gauge.
func (r *Repository) EnergyLevel(ctx context.Context) (float64, error) {
	var level float64
	row := r.pool.QueryRow(ctx, `SELECT level FROM energy_level WHERE id=1`)
	if err := row.Scan(&level); err != nil {
		return 0, err
	}
	return level, nil
}

// SetEnergyLevel stores the energy scalar.
func (r *Repository) SetEnergyLevel(ctx context.Context, level float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE energy_level SET level=$1, updated_at=NOW() WHERE id=1`, level)
	return err
}

func insertActivityEvent(ctx context.Context, tx pgx.Tx, eventType string, activity domain.Activity) error {
	payload, err := json.Marshal(outbox.ActivityEvent{
		ActivityID: activity.ID,
		Name:       activity.Name,
		Percentage: activity.Percentage,
		Kind:       string(activity.Kind),
	})
	if err != nil {
		return err
	}
	return insertOutbox(ctx, tx, eventType, activity.ID, payload)
}

func insertOutbox(ctx context.Context, tx pgx.Tx, eventType, partitionKey string, payload []byte) error {
	topic, ok := outbox.TopicFor(eventType)
	if !ok {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	const stmt = `INSERT INTO outbox (event_type, topic, partition_key, payload)
        VALUES ($1,$2,$3,$4)`
	_, err := tx.Exec(ctx, stmt, eventType, topic, partitionKey, payload)
	return err
}
