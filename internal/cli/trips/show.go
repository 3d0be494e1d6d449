package trips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wayfare/internal/cli"
	"wayfare/internal/engine"
	"wayfare/internal/models"
	"wayfare/internal/plan"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	kindSymbols = map[models.ItemKind]string{
		models.KindAttraction: "◉",
		models.KindLodging:    "⌂",
		models.KindTransport:  "➔",
		models.KindCustom:     "·",
	}
)

type ShowCmd struct {
	Trip string `arg:"" optional:"" help:"Draft key (defaults to the latest draft)."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.ResolveDraft(c.Trip)
	if err != nil {
		return err
	}
	store := engine.FromState(state)
	state = store.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render(state.Title))
	if state.Destination != "" {
		b.WriteString(faintStyle.Render("  " + state.Destination))
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("%s · %s", state.DisplayDate(), state.Status)))
	b.WriteString("\n\n")

	for _, day := range state.Days {
		b.WriteString(dayStyle.Render(fmt.Sprintf("Day %d  %s", day.DayNumber, day.Date)))
		cost := plan.DayCost(day.Items)
		if cost > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  (%.2f)", cost)))
		}
		b.WriteString("\n")

		if len(day.Items) == 0 {
			b.WriteString(faintStyle.Render("  nothing planned\n"))
		}
		for i, item := range day.Items {
			symbol := kindSymbols[item.Kind]
			line := fmt.Sprintf("  %d. %s %s", i+1, symbol, item.Name)
			if item.StartTime != "" {
				line += faintStyle.Render("  " + item.StartTime)
			}
			if item.Price > 0 {
				line += faintStyle.Render(fmt.Sprintf("  %.2f", item.Price))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	total := store.TotalCost()
	b.WriteString(fmt.Sprintf("Total cost: %.2f", total))
	if state.Budget != nil {
		b.WriteString(fmt.Sprintf("  budget: %.2f (%s)", *state.Budget, state.BudgetMode))
	}
	b.WriteString("\n")
	if store.BudgetExceeded() {
		b.WriteString(warnStyle.Render("⚠ over budget") + "\n")
	}

	fmt.Print(b.String())
	return nil
}
