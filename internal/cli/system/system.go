package system

import (
	"fmt"

	"wayfare/internal/cli"
	"wayfare/internal/config"
)

// InitCmd creates the local draft store.
type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("✓ Initialized wayfare storage at %s\n", ctx.Store.GetConfigPath())
	fmt.Println("  Create your first trip with 'wayfare new'.")
	return nil
}

// TokenSetCmd stores the API token in the OS keyring.
type TokenSetCmd struct {
	Token string `arg:"" help:"API token for the itinerary service."`
}

func (c *TokenSetCmd) Run(ctx *cli.Context) error {
	if err := config.SetToken(c.Token); err != nil {
		return err
	}
	fmt.Println("✓ Token stored in the system keyring")
	return nil
}

// TokenClearCmd removes the stored API token.
type TokenClearCmd struct{}

func (c *TokenClearCmd) Run(ctx *cli.Context) error {
	if err := config.ClearToken(); err != nil {
		return err
	}
	fmt.Println("✓ Token removed from the system keyring")
	return nil
}
