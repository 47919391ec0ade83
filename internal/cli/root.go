// Package cli implements the energy command-line client.
package cli

import (
	"context"
	"fmt"
	"log"

	"example.com/energy/internal/client"
	"example.com/energy/internal/ledger"
	"example.com/energy/internal/localcache"
)

// Context carries shared state into every command's Run method. Remote
// is the raw API client for operations the ledger does not cache
// (pairs, snapshots, distribution).
type Context struct {
	Ledger *ledger.Ledger
	Remote *client.Client
	Cache  *localcache.Cache
}

// Load pulls server state into the ledger. When the server is
// unreachable, the cached energy level and selected-activity ids are
// restored instead, so a restart does not lose the day's plan. The
// cache file is left untouched on that path; it is only rewritten from
// a successful refresh.
func (c *Context) Load(ctx context.Context) error {
	if err := c.Ledger.Refresh(ctx); err != nil {
		state, cacheErr := c.Cache.Load()
		if cacheErr != nil {
			return fmt.Errorf("server unreachable and cache unreadable: %w", err)
		}
		log.Printf("server unreachable, using cached state: %v", err)
		c.Ledger.RestoreFromCache(state.EnergyLevel, state.ActivityIDs)
		return nil
	}
	return c.saveCache()
}

// saveCache mirrors the current selection and energy level to disk.
func (c *Context) saveCache() error {
	state := localcache.State{EnergyLevel: c.Ledger.Energy()}
	for _, entry := range c.Ledger.Selection() {
		state.ActivityIDs = append(state.ActivityIDs, entry.ActivityID)
	}
	return c.Cache.Save(state)
}

func kindLabel(kind string) string {
	if kind == ledger.KindBoost {
		return "boost"
	}
	return "drain"
}
