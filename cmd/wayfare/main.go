package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"wayfare/internal/backup"
	"wayfare/internal/cli"
	"wayfare/internal/cli/backups"
	"wayfare/internal/cli/items"
	"wayfare/internal/cli/syncs"
	"wayfare/internal/cli/system"
	"wayfare/internal/cli/trips"
	"wayfare/internal/config"
	apperrors "wayfare/internal/errors"
	"wayfare/internal/logger"
	"wayfare/internal/prefs"
	"wayfare/internal/remote"
	"wayfare/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/wayfare/wayfare.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd  `cmd:"" help:"Initialize wayfare storage."`
	New    trips.NewCmd    `cmd:"" help:"Create a new trip."`
	Open   trips.EditCmd   `cmd:"" help:"Edit a trip interactively with background autosave."`
	List   trips.ListCmd   `cmd:"" help:"List all trips."`
	Show   trips.ShowCmd   `cmd:"" help:"Show a trip's days and items."`
	Delete trips.DeleteCmd `cmd:"" help:"Delete a local draft."`
	Dates  trips.DatesCmd  `cmd:"" help:"Set or clear a trip's date range."`
	Budget trips.BudgetCmd `cmd:"" help:"Set a manual budget or switch to auto."`
	Item   struct {
		Add       items.AddCmd       `cmd:"" help:"Add a catalog item to a day."`
		AddCustom items.AddCustomCmd `cmd:"" help:"Add a free-text activity interactively."`
		Remove    items.RemoveCmd    `cmd:"" help:"Remove an item from a day."`
		Move      items.MoveCmd      `cmd:"" help:"Move an item to another day."`
		Reorder   items.ReorderCmd   `cmd:"" help:"Move an item within its day."`
	} `cmd:"" help:"Manage day items."`
	Save    syncs.SaveCmd    `cmd:"" help:"Save the draft to the itinerary service."`
	Publish syncs.PublishCmd `cmd:"" help:"Validate and publish the trip."`
	Pull    syncs.PullCmd    `cmd:"" help:"Replace the local draft with the server state."`
	Backup  struct {
		List backups.ListCmd `cmd:"" help:"List recovery backups."`
		Show backups.ShowCmd `cmd:"" help:"Show one recovery backup."`
	} `cmd:"" help:"Inspect recovery backups."`
	Token struct {
		Set   system.TokenSetCmd   `cmd:"" help:"Store the API token in the keyring."`
		Clear system.TokenClearCmd `cmd:"" help:"Remove the stored API token."`
	} `cmd:"" help:"Manage the itinerary service token."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("wayfare"),
		kong.Description("Trip itinerary composer with background sync"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	configDir := filepath.Dir(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Storage type follows the file extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	cfg := config.Load()
	var client remote.Service
	if cfg.APIURL != "" {
		client = remote.NewClient(cfg.APIURL, cfg.APIToken)
	}

	appCtx := &cli.Context{
		Store:     store,
		Client:    client,
		Backups:   backup.NewStore(configDir),
		Prefs:     prefs.Load(configDir),
		ConfigDir: configDir,
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
