package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wayfare/internal/engine"
	"wayfare/internal/logger"
	"wayfare/internal/models"
	"wayfare/internal/remote"
	"wayfare/internal/validation"
)

// State is the controller's position in the save lifecycle.
type State string

const (
	StateIdle            State = "idle"
	StatePendingAutosave State = "pending_autosave"
	StateSaving          State = "saving"
	StateManualSaving    State = "manual_saving"
)

// ErrSaveInFlight is returned when a manual save is requested while another
// push is still running. The request is suppressed, not queued; the caller
// retries once the current push settles.
var ErrSaveInFlight = errors.New("a save is already in flight")

// ValidationError carries the conflicts that blocked a save before any
// network call was attempted.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	return e.Result.FormatReport()
}

// ContractError marks a response the transport layer called successful but
// that cannot be reconciled into the store, such as a save echo with no
// identifier. Accepting it silently would orphan the local state from the
// server record, so it is treated like a transport failure.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return "itinerary service broke its contract: " + e.Reason
}

// BackupSink receives recovery snapshots when a push fails.
type BackupSink interface {
	Write(models.ItineraryState) (string, error)
}

// Controller owns the autosave debounce timer and the explicit save and
// publish operations, and serializes all outbound traffic to the itinerary
// service: at most one push is in flight at any time, and concurrent
// triggers are suppressed rather than interleaved.
type Controller struct {
	mu       sync.Mutex
	state    State
	timer    *time.Timer
	manual   bool // manual save holds the exclusive path
	inFlight bool

	store   *engine.Store
	svc     remote.Service
	backups BackupSink
	delay   time.Duration

	// OnAutosave, when set, observes the outcome of each background
	// autosave attempt. Manual saves report errors to their caller instead.
	OnAutosave func(error)
}

// NewController wires a controller to the store's mutation feed. Every
// mutation restarts the trailing-edge debounce window; only the quiet period
// after the last mutation in a burst triggers a push.
func NewController(store *engine.Store, svc remote.Service, backups BackupSink, delay time.Duration) *Controller {
	c := &Controller{
		state:   StateIdle,
		store:   store,
		svc:     svc,
		backups: backups,
		delay:   delay,
	}
	store.OnMutate(c.NoteChange)
	return c
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// NoteChange schedules (or reschedules) the debounced autosave. Called for
// every store mutation; mutations during a manual save are not scheduled,
// since later mutations will re-trigger naturally.
func (c *Controller) NoteChange() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.manual {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.state = StatePendingAutosave
	c.timer = time.AfterFunc(c.delay, c.fireAutosave)
}

// fireAutosave runs when the debounce window elapses. A firing that races a
// manual save or an in-flight push is skipped, not queued.
func (c *Controller) fireAutosave() {
	c.mu.Lock()
	c.timer = nil
	if c.manual || c.inFlight {
		c.mu.Unlock()
		return
	}
	snapshot := c.store.State()
	c.inFlight = true
	c.state = StateSaving
	c.mu.Unlock()

	// Autosave keeps whatever status the itinerary already has; it never
	// promotes a draft or retracts a published trip.
	err := c.push(context.Background(), snapshot, snapshot.Status, snapshot.IsPublic)

	c.mu.Lock()
	c.inFlight = false
	if c.state == StateSaving {
		c.state = StateIdle
	}
	c.mu.Unlock()

	if err != nil {
		logger.Warn("Autosave failed", "error", err)
	} else {
		logger.Debug("Autosave completed")
	}
	if c.OnAutosave != nil {
		c.OnAutosave(err)
	}
}

// Save pushes the current state as a draft. It cancels any pending autosave
// and holds the exclusive manual path for the duration of the call.
func (c *Controller) Save(ctx context.Context) error {
	return c.manualPush(ctx, models.StatusDraft, false, nil)
}

// Publish validates the publish requirements and pushes with published
// status and public visibility. Validation failures surface before any
// network call and leave all state untouched.
func (c *Controller) Publish(ctx context.Context) error {
	check := func(snapshot models.ItineraryState) error {
		if result := validation.ForPublish(snapshot); result.HasConflicts() {
			return &ValidationError{Result: result}
		}
		return nil
	}
	return c.manualPush(ctx, models.StatusPublished, true, check)
}

// Flush pushes a pending autosave immediately, keeping the current status.
// A no-op when nothing is pending. Used when a session ends before the
// debounce window elapses.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	pending := c.state == StatePendingAutosave
	c.mu.Unlock()
	if !pending {
		return nil
	}
	snapshot := c.store.State()
	return c.manualPush(ctx, snapshot.Status, snapshot.IsPublic, nil)
}

func (c *Controller) manualPush(ctx context.Context, status models.Status, isPublic bool, check func(models.ItineraryState) error) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSaveInFlight
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.manual = true
	c.inFlight = true
	c.state = StateManualSaving
	snapshot := c.store.State()
	c.mu.Unlock()

	// The hold is always released, even if the push panics; a thrown error
	// must never leave the engine permanently blocked.
	defer func() {
		c.mu.Lock()
		c.manual = false
		c.inFlight = false
		c.state = StateIdle
		c.mu.Unlock()
	}()

	if check != nil {
		if err := check(snapshot); err != nil {
			return err
		}
	}
	return c.push(ctx, snapshot, status, isPublic)
}

// push runs the export, transmit, re-import cycle for one snapshot. On
// transport failure or contract violation the snapshot lands in the backup
// store and the engine state is left unchanged.
func (c *Controller) push(ctx context.Context, snapshot models.ItineraryState, status models.Status, isPublic bool) error {
	if result := validation.ForDraft(snapshot); result.HasConflicts() {
		return &ValidationError{Result: result}
	}

	payload := remote.Export(snapshot, status, isPublic)

	var (
		echo remote.Itinerary
		err  error
	)
	if snapshot.RemoteID == 0 {
		echo, err = c.svc.CreateItinerary(ctx, payload)
	} else {
		echo, err = c.svc.UpdateItinerary(ctx, snapshot.RemoteID, payload)
	}
	if err != nil {
		return c.fail(snapshot, fmt.Errorf("failed to push itinerary: %w", err))
	}
	if echo.ID == 0 {
		return c.fail(snapshot, &ContractError{Reason: "save response carries no itinerary id"})
	}

	imported := remote.Import(echo, snapshot.Shadow)
	imported.DraftKey = snapshot.DraftKey
	imported.BudgetMode = snapshot.BudgetMode
	c.store.Replace(imported)
	logger.Debug("Itinerary pushed", "id", echo.ID, "status", status)
	return nil
}

// Pull refreshes the store from the service record. Requires a remote id;
// local edits are overwritten (last write wins).
func (c *Controller) Pull(ctx context.Context) error {
	snapshot := c.store.State()
	if snapshot.RemoteID == 0 {
		return errors.New("itinerary has never been saved remotely")
	}

	echo, err := c.svc.GetItineraryDetail(ctx, snapshot.RemoteID)
	if err != nil {
		return fmt.Errorf("failed to fetch itinerary %d: %w", snapshot.RemoteID, err)
	}

	imported := remote.Import(echo, snapshot.Shadow)
	imported.DraftKey = snapshot.DraftKey
	imported.BudgetMode = snapshot.BudgetMode
	c.store.Replace(imported)
	return nil
}

func (c *Controller) fail(snapshot models.ItineraryState, err error) error {
	key, werr := c.backups.Write(snapshot)
	if werr != nil {
		logger.Error("Recovery backup failed", "error", werr)
		return err
	}
	return fmt.Errorf("%w (state backed up to %s)", err, key)
}
