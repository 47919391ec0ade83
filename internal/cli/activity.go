package cli

import (
	"context"
	"fmt"

	"example.com/energy/internal/ledger"
)

type ActivityListCmd struct {
	Kind string `short:"k" help:"Filter by kind (drain|boost)." enum:"drain,boost,all" default:"all"`
}

func (c *ActivityListCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	kinds := []string{ledger.KindDrain, ledger.KindBoost}
	if c.Kind != "all" {
		kinds = []string{c.Kind}
	}

	for _, kind := range kinds {
		for _, activity := range appCtx.Ledger.List(kind) {
			marker := " "
			if selectedIn(appCtx.Ledger, activity.ID) {
				marker = "*"
			}
			fmt.Printf("%s %-5s %5.1f%%  %s  (%s)\n", marker, kindLabel(kind), activity.Percentage, activity.Name, activity.ID)
		}
	}
	return nil
}

func selectedIn(l *ledger.Ledger, activityID string) bool {
	for _, entry := range l.Selection() {
		if entry.ActivityID == activityID {
			return true
		}
	}
	return false
}

type ActivityAddCmd struct {
	Name       string  `arg:"" help:"Activity name."`
	Percentage float64 `short:"p" help:"Weight in percent (0-100)." required:""`
	Kind       string  `short:"k" help:"Kind (drain|boost)." enum:"drain,boost" required:""`
}

func (c *ActivityAddCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	created, err := appCtx.Ledger.Create(ctx, c.Name, c.Percentage, c.Kind)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s activity: %s (ID: %s)\n", c.Kind, created.Name, created.ID)
	return nil
}

type ActivityEditCmd struct {
	ID         string  `arg:"" help:"Activity id."`
	Name       string  `short:"n" help:"New name." required:""`
	Percentage float64 `short:"p" help:"New weight in percent (0-100)." required:""`
}

func (c *ActivityEditCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	updated, err := appCtx.Ledger.Update(ctx, c.ID, c.Name, c.Percentage)
	if err != nil {
		return err
	}
	fmt.Printf("Updated: %s %.1f%%\n", updated.Name, updated.Percentage)
	return nil
}

type ActivityDeleteCmd struct {
	ID    string `arg:"" help:"Activity id."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *ActivityDeleteCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	if !c.Force {
		ok, err := confirm(fmt.Sprintf("Delete activity %s?", c.ID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := appCtx.Ledger.Delete(ctx, c.ID); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return appCtx.saveCache()
}
