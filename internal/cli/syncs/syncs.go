package syncs

import (
	"context"
	"errors"
	"fmt"

	"wayfare/internal/cli"
	"wayfare/internal/engine"
	"wayfare/internal/models"
	synccontrol "wayfare/internal/sync"
)

// SaveCmd pushes the draft to the itinerary service immediately and records
// the echoed server state locally.
type SaveCmd struct {
	Trip string `arg:"" optional:"" help:"Draft key (defaults to the latest draft)."`
}

func (c *SaveCmd) Run(ctx *cli.Context) error {
	store, controller, err := load(ctx, c.Trip)
	if err != nil {
		return err
	}

	if err := controller.Save(context.Background()); err != nil {
		return describeSaveError(err)
	}
	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	state := store.State()
	fmt.Printf("✓ Saved %q (remote id %d)\n", state.Title, state.RemoteID)
	return nil
}

// PublishCmd validates the draft, then saves it with published status and
// public visibility.
type PublishCmd struct {
	Trip string `arg:"" optional:"" help:"Draft key (defaults to the latest draft)."`
}

func (c *PublishCmd) Run(ctx *cli.Context) error {
	store, controller, err := load(ctx, c.Trip)
	if err != nil {
		return err
	}

	if err := controller.Publish(context.Background()); err != nil {
		return describeSaveError(err)
	}
	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	state := store.State()
	fmt.Printf("✓ Published %q (remote id %d)\n", state.Title, state.RemoteID)
	return nil
}

// PullCmd replaces the local draft with the server's current state.
type PullCmd struct {
	Trip string `arg:"" optional:"" help:"Draft key (defaults to the latest draft)."`
}

func (c *PullCmd) Run(ctx *cli.Context) error {
	store, controller, err := load(ctx, c.Trip)
	if err != nil {
		return err
	}

	if err := controller.Pull(context.Background()); err != nil {
		return err
	}
	if err := ctx.SaveDraft(store); err != nil {
		return err
	}

	state := store.State()
	fmt.Printf("✓ Pulled %q, now %d days and %d items\n", state.Title, len(state.Days), models.ItemCount(state.Days))
	return nil
}

func load(ctx *cli.Context, draftKey string) (*engine.Store, *synccontrol.Controller, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, nil, err
	}
	state, err := ctx.ResolveDraft(draftKey)
	if err != nil {
		return nil, nil, err
	}
	store := engine.FromState(state)
	controller, err := ctx.Controller(store)
	if err != nil {
		return nil, nil, err
	}
	return store, controller, nil
}

// describeSaveError renders validation conflicts as a report and reminds the
// user where the recovery backup landed after a failed push.
func describeSaveError(err error) error {
	var verr *synccontrol.ValidationError
	if errors.As(err, &verr) {
		fmt.Print(verr.Result.FormatReport())
		return fmt.Errorf("fix the conflicts above and retry")
	}

	var cerr *synccontrol.ContractError
	if errors.As(err, &cerr) {
		fmt.Println("The service accepted the save but returned an unusable response.")
		fmt.Println("Your local draft is unchanged; see 'wayfare backup list' for the recovery copy.")
	}
	return err
}
