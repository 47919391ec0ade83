package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/energy/internal/client"
	"example.com/energy/internal/ledger"
	"example.com/energy/internal/localcache"
)

func TestLoadRestoresCachedSelectionWhenOffline(t *testing.T) {
	cache := localcache.New(filepath.Join(t.TempDir(), "cache.json"))
	require.NoError(t, cache.Save(localcache.State{
		ActivityIDs: []string{"act-1", "act-2"},
		EnergyLevel: 55,
	}))

	appCtx := &Context{
		Ledger: ledger.New(&stubRemote{fail: true}),
		Cache:  cache,
	}
	require.NoError(t, appCtx.Load(context.Background()))

	require.Equal(t, 55.0, appCtx.Ledger.Energy())
	entries := appCtx.Ledger.Selection()
	require.Len(t, entries, 2)
	require.Equal(t, "act-1", entries[0].ActivityID)
	require.Equal(t, "act-2", entries[1].ActivityID)

	// The cache file survives the offline path unchanged.
	state, err := cache.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"act-1", "act-2"}, state.ActivityIDs)
	require.Equal(t, 55.0, state.EnergyLevel)
}

func TestLoadMirrorsServerStateToCache(t *testing.T) {
	cache := localcache.New(filepath.Join(t.TempDir(), "cache.json"))
	remote := &stubRemote{
		plan: []client.PlanEntry{
			{ID: "entry-1", Activity: client.Activity{ID: "act-9", Name: "Walk", Percentage: 15, Type: "boost"}},
		},
		energy: 72,
	}

	appCtx := &Context{
		Ledger: ledger.New(remote),
		Cache:  cache,
	}
	require.NoError(t, appCtx.Load(context.Background()))

	state, err := cache.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"act-9"}, state.ActivityIDs)
	require.Equal(t, 72.0, state.EnergyLevel)
}

func TestTodayBoostsFlagReadsSavedSnapshot(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewEncoder(w).Encode([]client.Activity{
			{ID: "b-1", Name: "Nap", Percentage: 20, Type: "boost"},
		})
	}))
	defer server.Close()

	remote := client.New(server.URL)
	appCtx := &Context{
		Ledger: ledger.New(remote),
		Remote: remote,
		Cache:  localcache.New(filepath.Join(t.TempDir(), "cache.json")),
	}

	cmd := &TodayCmd{Boosts: true}
	require.NoError(t, cmd.Run(appCtx))
	require.Equal(t, "/saved-todays-only-boost", path)
}

// stubRemote implements ledger.Remote in memory for command tests.
type stubRemote struct {
	fail   bool
	plan   []client.PlanEntry
	energy float64
}

var errOffline = errors.New("connection refused")

func (s *stubRemote) ListActivities(context.Context) ([]client.Activity, error) {
	if s.fail {
		return nil, errOffline
	}
	return nil, nil
}

func (s *stubRemote) CreateActivity(_ context.Context, name string, percentage float64, kind string) (*client.Activity, error) {
	if s.fail {
		return nil, errOffline
	}
	return &client.Activity{ID: "new", Name: name, Percentage: percentage, Type: kind}, nil
}

func (s *stubRemote) UpdateActivity(_ context.Context, id, name string, percentage float64) (*client.Activity, error) {
	if s.fail {
		return nil, errOffline
	}
	return &client.Activity{ID: id, Name: name, Percentage: percentage}, nil
}

func (s *stubRemote) DeleteActivity(context.Context, string) error {
	if s.fail {
		return errOffline
	}
	return nil
}

func (s *stubRemote) CreatePair(context.Context, string, float64, string, float64) (*client.Pair, error) {
	if s.fail {
		return nil, errOffline
	}
	return &client.Pair{}, nil
}

func (s *stubRemote) ListPlan(context.Context) ([]client.PlanEntry, error) {
	if s.fail {
		return nil, errOffline
	}
	return s.plan, nil
}

func (s *stubRemote) AddToPlan(context.Context, string) (*client.PlanEntry, error) {
	if s.fail {
		return nil, errOffline
	}
	return &client.PlanEntry{}, nil
}

func (s *stubRemote) RemoveFromPlan(context.Context, string) error {
	if s.fail {
		return errOffline
	}
	return nil
}

func (s *stubRemote) ClearPlan(context.Context) error {
	if s.fail {
		return errOffline
	}
	return nil
}

func (s *stubRemote) SaveDay(_ context.Context, date string, activities []client.Activity) (*client.Snapshot, error) {
	if s.fail {
		return nil, errOffline
	}
	return &client.Snapshot{Date: date, Activities: activities}, nil
}

func (s *stubRemote) EnergyLevel(context.Context) (float64, error) {
	if s.fail {
		return 0, errOffline
	}
	return s.energy, nil
}

func (s *stubRemote) SetEnergyLevel(_ context.Context, level float64) error {
	if s.fail {
		return errOffline
	}
	s.energy = level
	return nil
}
