package trips

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"wayfare/internal/cli"
	"wayfare/internal/engine"
	"wayfare/internal/models"
	synccontrol "wayfare/internal/sync"
)

// EditCmd runs a line-based editing session. Every edit reschedules the
// debounced autosave; quitting flushes anything still pending and writes the
// draft locally.
type EditCmd struct {
	Trip string `arg:"" optional:"" help:"Draft key (defaults to the latest draft)."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	release, err := ctx.AcquireLock()
	if err != nil {
		return err
	}
	defer release()

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	state, err := ctx.ResolveDraft(c.Trip)
	if err != nil {
		return err
	}
	store := engine.FromState(state)

	var controller *synccontrol.Controller
	if ctrl, err := ctx.Controller(store); err == nil {
		controller = ctrl
		controller.OnAutosave = func(err error) {
			if err != nil {
				fmt.Printf("autosave failed: %v\n", err)
			}
		}
	} else {
		fmt.Println("(offline: itinerary service not configured, edits stay local)")
	}

	fmt.Printf("Editing %q. Type 'help' for commands, 'quit' to finish.\n", store.State().Title)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := c.dispatch(ctx, store, controller, line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}

	if controller != nil {
		if err := controller.Flush(context.Background()); err != nil && !errors.Is(err, synccontrol.ErrSaveInFlight) {
			fmt.Printf("final sync failed: %v\n", err)
		}
	}
	if err := ctx.SaveDraft(store); err != nil {
		return err
	}
	fmt.Println("Draft saved.")
	return nil
}

func (c *EditCmd) dispatch(ctx *cli.Context, store *engine.Store, controller *synccontrol.Controller, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Println(`commands:
  add <day> <name> [price]        add a custom activity
  remove <day> <pos>              remove the item at a 1-based position
  reorder <day> <from> <to>       move an item within a day (1-based)
  move <fromDay> <toDay> <pos>    move an item to the end of another day
  dates <start> <end>             set the date range
  budget <amount>|auto            set a manual budget or switch to auto
  show                            print the itinerary
  save                            push a draft save now
  publish                         validate and publish
  quit                            flush pending saves and exit`)
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: add <day> <name> [price]")
		}
		day, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid day: %s", args[0])
		}
		name := strings.Join(args[1:], " ")
		price := 0.0
		// A trailing number is a price; everything before it is the name.
		if len(args) > 2 {
			if p, perr := strconv.ParseFloat(args[len(args)-1], 64); perr == nil {
				price = p
				name = strings.Join(args[1:len(args)-1], " ")
			}
		}
		item := models.NewCustomItem(name)
		item.Price = price
		return store.AddItem(day, item)

	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: remove <day> <pos>")
		}
		day, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid day: %s", args[0])
		}
		pos, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position: %s", args[1])
		}
		localID, err := itemAt(store.State(), day, pos)
		if err != nil {
			return err
		}
		return store.RemoveItem(day, localID)

	case "reorder":
		day, from, to, err := threeInts(args, "reorder <day> <from> <to>")
		if err != nil {
			return err
		}
		store.ReorderItem(day, from-1, to-1)
		return nil

	case "move":
		fromDay, toDay, pos, err := threeInts(args, "move <fromDay> <toDay> <pos>")
		if err != nil {
			return err
		}
		store.MoveItem(fromDay, toDay, pos-1, -1)
		return nil

	case "dates":
		if len(args) != 2 {
			return fmt.Errorf("usage: dates <start> <end>")
		}
		return store.SetDates(args[0], args[1])

	case "budget":
		if len(args) != 1 {
			return fmt.Errorf("usage: budget <amount>|auto")
		}
		if args[0] == "auto" {
			store.SetBudgetAuto()
			return nil
		}
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %s", args[0])
		}
		store.SetBudgetManual(amount)
		return nil

	case "show":
		show := ShowCmd{}
		snapshot := store.State()
		if err := ctx.SaveDraft(store); err != nil {
			return err
		}
		show.Trip = snapshot.DraftKey
		return show.Run(ctx)

	case "save":
		if controller == nil {
			return fmt.Errorf("itinerary service not configured")
		}
		if err := controller.Save(context.Background()); err != nil {
			return err
		}
		fmt.Println("saved")
		return nil

	case "publish":
		if controller == nil {
			return fmt.Errorf("itinerary service not configured")
		}
		if err := controller.Publish(context.Background()); err != nil {
			return err
		}
		fmt.Println("published")
		return nil

	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
}

func itemAt(state models.ItineraryState, dayNumber, pos int) (string, error) {
	if dayNumber < 1 || dayNumber > len(state.Days) {
		return "", fmt.Errorf("no such day: %d", dayNumber)
	}
	items := state.Days[dayNumber-1].Items
	if pos < 1 || pos > len(items) {
		return "", fmt.Errorf("no item at position %d on day %d", pos, dayNumber)
	}
	return items[pos-1].LocalID, nil
}

func threeInts(args []string, usage string) (int, int, int, error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("usage: %s", usage)
	}
	out := make([]int, 3)
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid number: %s", arg)
		}
		out[i] = n
	}
	return out[0], out[1], out[2], nil
}
