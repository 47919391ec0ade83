package cli

import (
	"context"
	"fmt"
)

type EnergyGetCmd struct{}

func (c *EnergyGetCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}
	fmt.Println(gauge(appCtx.Ledger.Energy()))
	return nil
}

type EnergySetCmd struct {
	Level float64 `arg:"" help:"New energy level. Not clamped to [0,100]."`
}

func (c *EnergySetCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	if err := appCtx.Ledger.SetEnergy(ctx, c.Level); err != nil {
		return err
	}
	fmt.Println(gauge(appCtx.Ledger.Energy()))
	return appCtx.saveCache()
}
