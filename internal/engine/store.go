package engine

import (
	"fmt"
	"sync"
	"time"

	"wayfare/internal/constants"
	"wayfare/internal/models"
	"wayfare/internal/plan"
)

// Store owns the canonical editable itinerary state for one session. All
// mutation goes through its methods; every mutation replaces the whole state
// value, and callers only ever see deep clones, so nothing outside the store
// can alias a day or item slice across a mutation.
//
// An internal mutex guards the state: the autosave timer goroutine reads and
// replaces it while command code mutates it. Mutation callbacks are invoked
// after the lock is released, so a callback may freely call back into the
// store or into the sync controller.
type Store struct {
	mu       sync.Mutex
	state    models.ItineraryState
	onMutate []func()
}

// New creates a store around a fresh draft.
func New(title string, dayCount int) *Store {
	return &Store{state: models.NewItinerary(title, dayCount)}
}

// FromState creates a store around previously loaded state (a local draft or
// an imported remote itinerary). Items are re-normalized and days renumbered
// contiguously from 1, so a hand-edited or corrupted draft file cannot smuggle
// in duplicate or gapped day numbers.
func FromState(state models.ItineraryState) *Store {
	normalized := state.Clone()
	for i := range normalized.Days {
		normalized.Days[i].DayNumber = i + 1
		normalized.Days[i].Date = models.DateForDay(normalized.StartDate, i+1)
		for j, item := range normalized.Days[i].Items {
			normalized.Days[i].Items[j] = models.Normalize(item)
		}
	}
	if normalized.BudgetMode == "" {
		normalized.BudgetMode = models.BudgetAuto
	}
	if normalized.Status == "" {
		normalized.Status = models.StatusDraft
	}
	s := &Store{state: normalized}
	s.mu.Lock()
	s.recomputeBudget()
	s.mu.Unlock()
	return s
}

// OnMutate registers a callback fired after every autosave-eligible
// mutation. The sync controller uses this to schedule debounced pushes.
func (s *Store) OnMutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMutate = append(s.onMutate, fn)
}

// State returns a deep clone of the current state.
func (s *Store) State() models.ItineraryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// TotalCost derives the current trip cost from item prices.
func (s *Store) TotalCost() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return plan.TotalCost(s.state.Days)
}

// BudgetExceeded reports whether the derived cost is over the budget.
func (s *Store) BudgetExceeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return plan.Exceeded(s.state.Days, s.state.Budget)
}

func (s *Store) SetTitle(title string) {
	if title == "" {
		title = constants.DefaultTitle
	}
	s.mu.Lock()
	if s.state.Title == title {
		s.mu.Unlock()
		return
	}
	s.state.Title = title
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetNotes(notes string) {
	s.mu.Lock()
	if s.state.Notes == notes {
		s.mu.Unlock()
		return
	}
	s.state.Notes = notes
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetDestination(destination string) {
	s.mu.Lock()
	if s.state.Destination == destination {
		s.mu.Unlock()
		return
	}
	s.state.Destination = destination
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetCover(cover string) {
	s.mu.Lock()
	if s.state.Cover == cover {
		s.mu.Unlock()
		return
	}
	s.state.Cover = cover
	s.mu.Unlock()
	s.notify()
}

// SetDates changes the date range and reconciles the day list. An inverted
// range is rejected and the prior dates kept. Items on days beyond the new
// range are discarded; that trim is intentional.
func (s *Store) SetDates(startDate, endDate string) error {
	for _, d := range []string{startDate, endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(constants.DateFormat, d); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", d)
		}
	}
	if startDate != "" && endDate != "" && models.DaysBetween(startDate, endDate) == 0 {
		return fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}

	s.mu.Lock()
	s.state.StartDate = startDate
	s.state.EndDate = endDate
	s.state.Days = plan.Reconcile(s.state.Days, startDate, endDate)
	if startDate != "" {
		s.state.Shadow.StartDate = startDate
	}
	if endDate != "" {
		s.state.Shadow.EndDate = endDate
	}
	s.recomputeBudget()
	s.mu.Unlock()
	s.notify()
	return nil
}

// ClearDates drops the date range but keeps every day and its items under
// placeholder labels.
func (s *Store) ClearDates() {
	s.mu.Lock()
	if s.state.StartDate == "" && s.state.EndDate == "" {
		s.mu.Unlock()
		return
	}
	s.state.StartDate = ""
	s.state.EndDate = ""
	s.state.Days = plan.Reconcile(s.state.Days, "", "")
	s.mu.Unlock()
	s.notify()
}

// SetBudgetManual switches to a user-supplied budget; item changes no
// longer touch it.
func (s *Store) SetBudgetManual(budget float64) {
	s.mu.Lock()
	s.state.BudgetMode = models.BudgetManual
	s.state.Budget = &budget
	s.mu.Unlock()
	s.notify()
}

// SetBudgetAuto derives the budget from item prices from now on.
func (s *Store) SetBudgetAuto() {
	s.mu.Lock()
	s.state.BudgetMode = models.BudgetAuto
	s.recomputeBudget()
	s.mu.Unlock()
	s.notify()
}

// AddItem appends a normalized item to the given 1-based day.
func (s *Store) AddItem(dayNumber int, item models.DisplayItem) error {
	s.mu.Lock()
	idx := dayNumber - 1
	if idx < 0 || idx >= len(s.state.Days) {
		s.mu.Unlock()
		return fmt.Errorf("no such day: %d", dayNumber)
	}
	s.state.Days[idx].Items = append(s.state.Days[idx].Items, models.Normalize(item))
	s.recomputeBudget()
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveItem deletes the item with the given local id from the given day.
func (s *Store) RemoveItem(dayNumber int, localID string) error {
	s.mu.Lock()
	idx := dayNumber - 1
	if idx < 0 || idx >= len(s.state.Days) {
		s.mu.Unlock()
		return fmt.Errorf("no such day: %d", dayNumber)
	}
	items := s.state.Days[idx].Items
	for i, item := range items {
		if item.LocalID == localID {
			s.state.Days[idx].Items = append(items[:i], items[i+1:]...)
			s.recomputeBudget()
			s.mu.Unlock()
			s.notify()
			return nil
		}
	}
	s.mu.Unlock()
	return fmt.Errorf("item not found on day %d: %s", dayNumber, localID)
}

// ReorderItem moves an item within one day. Indices are 0-based positions in
// the day's item list; out-of-range indices reduce to a no-op.
func (s *Store) ReorderItem(dayNumber, fromIndex, toIndex int) {
	s.mu.Lock()
	days := plan.ReorderWithinDay(s.state.Days, dayNumber-1, fromIndex, toIndex)
	if models.ItemCount(days) != models.ItemCount(s.state.Days) {
		// Conservation violated means a bug in the reorder engine; refuse
		// the new value rather than lose an item.
		s.mu.Unlock()
		return
	}
	s.state.Days = days
	s.mu.Unlock()
	s.notify()
}

// MoveItem transfers an item between days, inserting at insertAt (negative
// appends). The item keeps its identity; only its owning day changes.
func (s *Store) MoveItem(fromDayNumber, toDayNumber, itemIndex, insertAt int) {
	s.mu.Lock()
	days := plan.MoveAcrossDays(s.state.Days, fromDayNumber-1, toDayNumber-1, itemIndex, insertAt)
	if models.ItemCount(days) != models.ItemCount(s.state.Days) {
		s.mu.Unlock()
		return
	}
	s.state.Days = days
	s.mu.Unlock()
	s.notify()
}

// Replace swaps in a whole new state value, e.g. after re-importing the
// service's save response. Local-only fields (draft key, budget mode) are
// preserved from the current state when the incoming value lacks them, and
// no autosave is triggered: replacing with the service's own echo must not
// feed a synchronization loop.
func (s *Store) Replace(state models.ItineraryState) {
	next := state.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if next.DraftKey == "" {
		next.DraftKey = s.state.DraftKey
	}
	if next.BudgetMode == "" {
		next.BudgetMode = s.state.BudgetMode
	}
	s.state = next
	s.recomputeBudget()
}

// AdoptRemoteID records the identifier assigned by the service on first
// create. Subsequent saves become updates. Not an autosave trigger.
func (s *Store) AdoptRemoteID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.RemoteID = id
}

// recomputeBudget keeps an auto-mode budget equal to the derived total. The
// write is skipped when the value is unchanged so that a budget refresh
// never looks like a fresh mutation. Callers must hold the mutex.
func (s *Store) recomputeBudget() {
	if s.state.BudgetMode != models.BudgetAuto {
		return
	}
	total := plan.TotalCost(s.state.Days)
	if s.state.Budget != nil && *s.state.Budget == total {
		return
	}
	s.state.Budget = &total
}

// notify runs the mutation callbacks outside the lock; a callback may read
// the store or schedule controller work without deadlocking.
func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), len(s.onMutate))
	copy(fns, s.onMutate)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
