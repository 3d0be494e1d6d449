package trips

import (
	"fmt"

	"wayfare/internal/cli"
	"wayfare/internal/engine"
	"wayfare/internal/logger"
	"wayfare/internal/prefs"
)

type NewCmd struct {
	Title       string `arg:"" optional:"" help:"Trip title."`
	Destination string `help:"Destination city." short:"d"`
	Days        int    `help:"Number of days (defaults to your usual trip length)." default:"0"`
	Start       string `help:"Start date (YYYY-MM-DD)."`
	End         string `help:"End date (YYYY-MM-DD)."`
}

func (c *NewCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	days := c.Days
	if days < 1 {
		days = ctx.Prefs.DefaultTripLength
	}

	store := engine.New(c.Title, days)
	if c.Destination != "" {
		store.SetDestination(c.Destination)
	}
	if c.Start != "" || c.End != "" {
		if err := store.SetDates(c.Start, c.End); err != nil {
			return err
		}
	}

	if err := ctx.SaveDraft(store); err != nil {
		return err
	}
	if c.Destination != "" {
		if err := prefs.RecordDestination(ctx.ConfigDir, c.Destination); err != nil {
			logger.Warn("Failed to record destination preference", "error", err)
		}
	}

	state := store.State()
	fmt.Printf("✓ Created %s\n", state.Summary())
	fmt.Printf("  draft key: %s\n", state.DraftKey)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	drafts, err := ctx.Store.ListItineraries()
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		fmt.Println("No itineraries yet. Create one with 'wayfare new'.")
		return nil
	}

	for _, draft := range drafts {
		marker := " "
		if draft.RemoteID != 0 {
			marker = "↑"
		}
		fmt.Printf("%s %s  %s\n", marker, draft.DraftKey[:8], draft.Summary())
	}
	return nil
}

type DeleteCmd struct {
	Trip string `arg:"" help:"Draft key of the trip to delete."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.Store.GetItinerary(c.Trip)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteItinerary(c.Trip); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted local draft %q\n", state.Title)
	if state.RemoteID != 0 {
		fmt.Println("  The published copy on the itinerary service is untouched.")
	}
	return nil
}

type DatesCmd struct {
	Start string `arg:"" optional:"" help:"Start date (YYYY-MM-DD)."`
	End   string `arg:"" optional:"" help:"End date (YYYY-MM-DD)."`
	Trip  string `help:"Draft key (defaults to the latest draft)." short:"t"`
	Clear bool   `help:"Clear the date range, keeping all days and items."`
}

func (c *DatesCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.ResolveDraft(c.Trip)
	if err != nil {
		return err
	}
	store := engine.FromState(state)

	if c.Clear {
		store.ClearDates()
	} else {
		if c.Start == "" || c.End == "" {
			return fmt.Errorf("both start and end dates are required (or use --clear)")
		}
		if err := store.SetDates(c.Start, c.End); err != nil {
			return err
		}
	}

	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	updated := store.State()
	fmt.Printf("✓ %s now runs %s (%d days)\n", updated.Title, updated.DisplayDate(), len(updated.Days))
	return nil
}

type BudgetCmd struct {
	Amount float64 `arg:"" optional:"" help:"Manual budget amount."`
	Auto   bool    `help:"Derive the budget from item prices."`
	Trip   string  `help:"Draft key (defaults to the latest draft)." short:"t"`
}

func (c *BudgetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.ResolveDraft(c.Trip)
	if err != nil {
		return err
	}
	store := engine.FromState(state)

	switch {
	case c.Auto:
		store.SetBudgetAuto()
	case c.Amount > 0:
		store.SetBudgetManual(c.Amount)
	default:
		return fmt.Errorf("give a budget amount or --auto")
	}

	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	updated := store.State()
	if updated.Budget != nil {
		fmt.Printf("✓ Budget set to %.2f (%s)\n", *updated.Budget, updated.BudgetMode)
	}
	if store.BudgetExceeded() {
		fmt.Printf("⚠ Planned cost %.2f exceeds the budget\n", store.TotalCost())
	}
	return nil
}
