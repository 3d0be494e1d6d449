package items

import (
	"fmt"
	"strconv"

	"wayfare/internal/cli"
	"wayfare/internal/engine"
	"wayfare/internal/models"
)

// AddCmd appends a catalog-backed item to a day. The referent id points at
// the catalog entry the item came from; prices and times can be set inline.
type AddCmd struct {
	Day      int     `arg:"" help:"1-based day number."`
	Kind     string  `arg:"" help:"Item kind (attraction, lodging, transport, custom)."`
	Name     string  `arg:"" help:"Item name."`
	Referent string  `help:"Catalog id of the attraction, hotel, or route." short:"r"`
	Price    float64 `help:"Price for this item." short:"p"`
	Start    string  `help:"Start time (HH:MM)."`
	End      string  `help:"End time (HH:MM)."`
	Address  string  `help:"Street address or meeting point." short:"a"`
	Trip     string  `help:"Draft key (defaults to the latest draft)." short:"t"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	kind, err := cli.ParseKind(c.Kind)
	if err != nil {
		return err
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	state, err := ctx.ResolveDraft(c.Trip)
	if err != nil {
		return err
	}
	store := engine.FromState(state)

	var item models.DisplayItem
	if kind == models.KindCustom {
		item = models.NewCustomItem(c.Name)
	} else {
		item = models.NewItem(kind, c.Referent, c.Name)
	}
	item.Price = c.Price
	item.StartTime = c.Start
	item.EndTime = c.End
	item.Address = c.Address

	if err := store.AddItem(c.Day, item); err != nil {
		return err
	}
	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	fmt.Printf("✓ Added %q to day %d\n", c.Name, c.Day)
	return nil
}

// RemoveCmd deletes the item at a 1-based position on a day.
type RemoveCmd struct {
	Day  int    `arg:"" help:"1-based day number."`
	Pos  int    `arg:"" help:"1-based position within the day."`
	Trip string `help:"Draft key (defaults to the latest draft)." short:"t"`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.ResolveDraft(c.Trip)
	if err != nil {
		return err
	}
	store := engine.FromState(state)

	item, err := itemAt(store.State(), c.Day, c.Pos)
	if err != nil {
		return err
	}
	if err := store.RemoveItem(c.Day, item.LocalID); err != nil {
		return err
	}
	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	fmt.Printf("✓ Removed %q from day %d\n", item.Name, c.Day)
	return nil
}

// ReorderCmd moves an item from one 1-based position to another on the same
// day. The item is removed first, so the target position is interpreted
// against the shortened list.
type ReorderCmd struct {
	Day  int    `arg:"" help:"1-based day number."`
	From int    `arg:"" help:"Current 1-based position."`
	To   int    `arg:"" help:"Target 1-based position."`
	Trip string `help:"Draft key (defaults to the latest draft)." short:"t"`
}

func (c *ReorderCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.ResolveDraft(c.Trip)
	if err != nil {
		return err
	}
	store := engine.FromState(state)

	item, err := itemAt(store.State(), c.Day, c.From)
	if err != nil {
		return err
	}
	store.ReorderItem(c.Day, c.From-1, c.To-1)
	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	fmt.Printf("✓ Moved %q to position %d on day %d\n", item.Name, c.To, c.Day)
	return nil
}

// MoveCmd relocates an item to another day, appending by default or
// inserting at --at when given.
type MoveCmd struct {
	FromDay int    `arg:"" help:"1-based source day."`
	Pos     int    `arg:"" help:"1-based position within the source day."`
	ToDay   int    `arg:"" help:"1-based target day."`
	At      string `help:"1-based insert position on the target day (appends when omitted)."`
	Trip    string `help:"Draft key (defaults to the latest draft)." short:"t"`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, err := ctx.ResolveDraft(c.Trip)
	if err != nil {
		return err
	}
	store := engine.FromState(state)

	item, err := itemAt(store.State(), c.FromDay, c.Pos)
	if err != nil {
		return err
	}

	insertAt := -1
	if c.At != "" {
		n, err := strconv.Atoi(c.At)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid insert position: %s", c.At)
		}
		insertAt = n - 1
	}

	store.MoveItem(c.FromDay, c.ToDay, c.Pos-1, insertAt)
	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	fmt.Printf("✓ Moved %q from day %d to day %d\n", item.Name, c.FromDay, c.ToDay)
	return nil
}

func itemAt(state models.ItineraryState, dayNumber, pos int) (models.DisplayItem, error) {
	if dayNumber < 1 || dayNumber > len(state.Days) {
		return models.DisplayItem{}, fmt.Errorf("no such day: %d", dayNumber)
	}
	items := state.Days[dayNumber-1].Items
	if pos < 1 || pos > len(items) {
		return models.DisplayItem{}, fmt.Errorf("no item at position %d on day %d", pos, dayNumber)
	}
	return items[pos-1], nil
}
