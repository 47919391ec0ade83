package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"example.com/energy/internal/cli"
	"example.com/energy/internal/client"
	"example.com/energy/internal/ledger"
	"example.com/energy/internal/localcache"
)

var CLI struct {
	Version kong.VersionFlag
	Server  string `help:"Energy service base URL." env:"ENERGY_SERVER" default:"http://localhost:8080"`
	Cache   string `help:"Local cache file path." env:"ENERGY_CACHE" type:"path"`

	Activity struct {
		List   cli.ActivityListCmd   `cmd:"" help:"List drain and boost activities."`
		Add    cli.ActivityAddCmd    `cmd:"" help:"Add an activity."`
		Edit   cli.ActivityEditCmd   `cmd:"" help:"Edit an activity's name or weight."`
		Delete cli.ActivityDeleteCmd `cmd:"" help:"Delete an activity."`
	} `cmd:"" help:"Manage the activity catalog."`

	Pair struct {
		New    cli.PairNewCmd    `cmd:"" help:"Capture a linked drain/boost pair."`
		List   cli.PairListCmd   `cmd:"" help:"List pairs."`
		Delete cli.PairDeleteCmd `cmd:"" help:"Delete a pair and both activities."`
	} `cmd:"" help:"Manage drain/boost pairs."`

	Toggle cli.ToggleCmd `cmd:"" help:"Toggle an activity on or off today's plan."`
	Done   cli.DoneCmd   `cmd:"" help:"Mark a planned activity done."`
	Today  cli.TodayCmd  `cmd:"" help:"Show today's plan and totals."`
	Status cli.StatusCmd `cmd:"" help:"Show the energy gauge and net score." default:"1"`
	NewDay cli.NewDayCmd `cmd:"" name:"new-day" help:"Clear the plan; energy carries over."`

	Day struct {
		Save cli.DaySaveCmd `cmd:"" help:"Save today's plan as a snapshot."`
		Show cli.DayShowCmd `cmd:"" help:"Show a saved day."`
	} `cmd:"" help:"Work with saved days."`

	Energy struct {
		Get cli.EnergyGetCmd `cmd:"" help:"Show the energy level."`
		Set cli.EnergySetCmd `cmd:"" help:"Overwrite the energy level."`
	} `cmd:"" help:"Read or write the energy level."`

	Stats cli.StatsCmd `cmd:"" help:"Show the per-day drained/gave history."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("energy"),
		kong.Description("Personal energy budget tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	cachePath := CLI.Cache
	if cachePath == "" {
		cachePath = localcache.DefaultPath()
	}

	remote := client.New(CLI.Server)
	appCtx := &cli.Context{
		Ledger: ledger.New(remote),
		Remote: remote,
		Cache:  localcache.New(cachePath),
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
