package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"example.com/energy/internal/ledger"
)

// PairNewCmd walks the guided four-step capture: drain name, drain
// percentage, boost name, boost percentage. Both halves are committed as
// one unit.
type PairNewCmd struct{}

func (c *PairNewCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	var drainName, drainPct, boostName, boostPct string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What drains you?").
				Value(&drainName).
				Validate(requireName),
			huh.NewInput().
				Title("How much does it drain? (%)").
				Value(&drainPct).
				Validate(requirePercentage),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("What gives that energy back?").
				Value(&boostName).
				Validate(requireName),
			huh.NewInput().
				Title("How much does it give? (%)").
				Value(&boostPct).
				Validate(requirePercentage),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	flow := ledger.NewPairFlow()
	for _, input := range []string{drainName, drainPct, boostName, boostPct} {
		if err := flow.Advance(input); err != nil {
			return err
		}
	}

	result, err := flow.Commit(ctx, appCtx.Ledger)
	if err != nil {
		return err
	}
	fmt.Printf("Pair created (ID: %s). Both activities are toggle-able now.\n", result.PairID)
	return nil
}

func requireName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

func requirePercentage(s string) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if value < 0 || value > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Value(&ok),
		),
	).Run()
	return ok, err
}

type PairListCmd struct{}

func (c *PairListCmd) Run(appCtx *Context) error {
	remote := appCtx.Remote
	pairs, err := remote.ListPairs(context.Background())
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		fmt.Printf("%s  -%.1f%% %s  /  +%.1f%% %s\n",
			pair.ID,
			pair.DrainActivity.Percentage, pair.DrainActivity.Name,
			pair.BoostActivity.Percentage, pair.BoostActivity.Name)
	}
	return nil
}

type PairDeleteCmd struct {
	ID string `arg:"" help:"Pair id."`
}

func (c *PairDeleteCmd) Run(appCtx *Context) error {
	if err := appCtx.Remote.DeletePair(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Println("Pair deleted.")
	return nil
}
