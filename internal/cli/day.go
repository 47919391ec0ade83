package cli

import (
	"context"
	"fmt"
	"time"

	"example.com/energy/internal/ledger"
)

type ToggleCmd struct {
	ID string `arg:"" help:"Activity id to toggle on or off today's plan."`
}

func (c *ToggleCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	if err := appCtx.Ledger.Toggle(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Energy level: %.1f\n", appCtx.Ledger.Energy())
	return appCtx.saveCache()
}

type DoneCmd struct {
	ID   string `arg:"" help:"Activity id to mark done."`
	Undo bool   `short:"u" help:"Clear the done mark instead."`
}

func (c *DoneCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}
	return appCtx.Ledger.MarkDone(c.ID, !c.Undo)
}

type TodayCmd struct {
	Boosts bool `short:"b" help:"Show only the boost activities from today's saved snapshot."`
}

func (c *TodayCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	if c.Boosts {
		boosts, err := appCtx.Remote.TodaysBoosts(ctx)
		if err != nil {
			return err
		}
		if len(boosts) == 0 {
			fmt.Println("No boosts saved for today yet.")
			return nil
		}
		for _, activity := range boosts {
			fmt.Printf("+%.1f%%  %s\n", activity.Percentage, activity.Name)
		}
		return nil
	}

	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	entries := appCtx.Ledger.Selection()
	if len(entries) == 0 {
		fmt.Println("Nothing planned today.")
		return nil
	}

	for _, entry := range entries {
		mark := "[ ]"
		if entry.Done {
			mark = "[x]"
		}
		sign := "-"
		if entry.Kind == ledger.KindBoost {
			sign = "+"
		}
		fmt.Printf("%s %s%.1f%%  %s\n", mark, sign, entry.Percentage, entry.Name)
	}

	totals := appCtx.Ledger.Totals()
	fmt.Printf("\nDrain %.1f%%  Boost %.1f%%  Net %+.1f%%\n", totals.TotalDrain, totals.TotalBoost, totals.Net)
	return nil
}

type NewDayCmd struct{}

func (c *NewDayCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	if err := appCtx.Ledger.NewDay(ctx); err != nil {
		return err
	}
	fmt.Printf("Plan cleared. Energy level stays at %.1f.\n", appCtx.Ledger.Energy())
	return appCtx.saveCache()
}

type DaySaveCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD); defaults to today."`
}

func (c *DaySaveCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	snapshot, err := appCtx.Ledger.SaveDay(ctx, date)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s: drained %.1f%%, boosted %.1f%%.\n", snapshot.Date, snapshot.DrainedTotal, snapshot.BoostedTotal)
	return appCtx.saveCache()
}

type DayShowCmd struct {
	Date string `arg:"" help:"Date (YYYY-MM-DD)."`
}

func (c *DayShowCmd) Run(appCtx *Context) error {
	snapshot, err := appCtx.Remote.GetSnapshot(context.Background(), c.Date)
	if err != nil {
		return err
	}

	for _, activity := range snapshot.Activities {
		sign := "-"
		if activity.Type == ledger.KindBoost {
			sign = "+"
		}
		fmt.Printf("%s%.1f%%  %s\n", sign, activity.Percentage, activity.Name)
	}
	fmt.Printf("\nDrained %.1f%%  Boosted %.1f%%\n", snapshot.DrainedTotal, snapshot.BoostedTotal)
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(appCtx *Context) error {
	points, err := appCtx.Remote.Distribution(context.Background())
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Println("No saved days yet.")
		return nil
	}

	for _, point := range points {
		fmt.Printf("%s  %s %s\n", point.Date, drainBar(point.Drained), boostBar(point.Gave))
	}
	return nil
}
