package items

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"wayfare/internal/cli"
	"wayfare/internal/constants"
	"wayfare/internal/engine"
	"wayfare/internal/models"
)

// AddCustomCmd collects a free-text activity through an interactive form.
type AddCustomCmd struct {
	Day  int    `arg:"" help:"1-based day number."`
	Trip string `help:"Draft key (defaults to the latest draft)." short:"t"`
}

func (c *AddCustomCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.ResolveDraft(c.Trip)
	if err != nil {
		return err
	}
	store := engine.FromState(state)

	if c.Day < 1 || c.Day > len(store.State().Days) {
		return fmt.Errorf("no such day: %d", c.Day)
	}

	var (
		name        string
		description string
		price       string
		start       string
		end         string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("activity name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Notes").
				Value(&description),
			huh.NewInput().
				Title("Price").
				Value(&price).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					p, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return err
					}
					if p < 0 {
						return fmt.Errorf("price cannot be negative")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start time (HH:MM)").
				Value(&start).
				Validate(validateTime),
			huh.NewInput().
				Title("End time (HH:MM)").
				Value(&end).
				Validate(validateTime),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return err
	}

	item := models.NewCustomItem(strings.TrimSpace(name))
	item.Description = strings.TrimSpace(description)
	item.StartTime = strings.TrimSpace(start)
	item.EndTime = strings.TrimSpace(end)
	if p := strings.TrimSpace(price); p != "" {
		item.Price, _ = strconv.ParseFloat(p, 64)
	}

	if err := store.AddItem(c.Day, item); err != nil {
		return err
	}
	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	fmt.Printf("✓ Added %q to day %d\n", item.Name, c.Day)
	return nil
}

func validateTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("want HH:MM, e.g. 09:30")
	}
	return nil
}
