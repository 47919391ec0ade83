package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"example.com/energy/internal/ledger"
)

var (
	drainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	boostStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	bandStyle  = lipgloss.NewStyle().Bold(true)
)

type StatusCmd struct{}

func (c *StatusCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	if err := appCtx.Load(ctx); err != nil {
		return err
	}

	totals := appCtx.Ledger.Totals()
	band := ledger.ClassifyNet(totals.Net)

	fmt.Printf("Energy %s\n\n", gauge(appCtx.Ledger.Energy()))
	fmt.Printf("Drain  %s %.1f%%\n", drainStyle.Render(bar(totals.TotalDrain)), totals.TotalDrain)
	fmt.Printf("Boost  %s %.1f%%\n", boostStyle.Render(bar(totals.TotalBoost)), totals.TotalBoost)
	fmt.Printf("Net    %+.1f%% (%s)\n\n", totals.Net, bandStyle.Render(string(band)))
	fmt.Println(band.Message())
	return nil
}

// gauge renders the energy level as a 20-cell bar. The level may run
// below 0 or above 100; the bar clamps, the number does not.
func gauge(level float64) string {
	const cells = 20
	filled := int(math.Round(level / 100 * cells))
	if filled < 0 {
		filled = 0
	}
	if filled > cells {
		filled = cells
	}

	style := boostStyle
	if level <= 30 {
		style = drainStyle
	}
	return fmt.Sprintf("%s%s %.1f",
		style.Render(strings.Repeat("█", filled)),
		dimStyle.Render(strings.Repeat("░", cells-filled)),
		level)
}

func bar(percentage float64) string {
	width := int(math.Round(percentage / 5))
	if width < 0 {
		width = 0
	}
	if width > 40 {
		width = 40
	}
	return strings.Repeat("▇", width)
}

func drainBar(percentage float64) string {
	return drainStyle.Render(bar(percentage))
}

func boostBar(percentage float64) string {
	return boostStyle.Render(bar(percentage))
}
