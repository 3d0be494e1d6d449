package backups

import (
	"fmt"
	"time"

	"wayfare/internal/cli"
)

// ListCmd prints the recovery backups, newest first. Backups are written when
// a push fails and are never replayed automatically.
type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	infos, err := ctx.Backups.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No recovery backups.")
		return nil
	}

	for _, info := range infos {
		fmt.Printf("%s  %s  %d bytes\n", info.Key, info.Timestamp.Format(time.RFC3339), info.Size)
	}
	return nil
}

// ShowCmd prints the itinerary captured in one backup.
type ShowCmd struct {
	Key string `arg:"" help:"Backup key from 'wayfare backup list'."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Backups.Read(c.Key)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", state.Summary())
	fmt.Printf("  draft key: %s\n", state.DraftKey)
	if state.RemoteID != 0 {
		fmt.Printf("  remote id: %d\n", state.RemoteID)
	}
	for _, day := range state.Days {
		fmt.Printf("  Day %d (%s): %d items\n", day.DayNumber, day.Date, len(day.Items))
	}
	return nil
}
