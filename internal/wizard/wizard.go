// Package wizard owns the in-progress reservation selection and the two-step
// flow that produces it. All mutation goes through transition methods; none of
// them can fail, invalid input just leaves the state unchanged.
package wizard

import (
	"time"

	"github.com/example/poi-reserve/internal/calendar"
	"github.com/example/poi-reserve/internal/reservation"
	"github.com/example/poi-reserve/internal/schedule"
)

// Step is the wizard's current screen.
type Step string

const (
	StepDatetime  Step = "datetime"
	StepTableType Step = "tableType"
)

// Observer is notified with the chosen slot id on every slot selection,
// independent of the eventually finalized payload.
type Observer func(sessionID string)

// Wizard is owned by exactly one rendering context while in progress;
// ownership of the selection transfers by value on Advance from the final
// step.
type Wizard struct {
	today   time.Time
	view    calendar.View
	slots   []schedule.Slot
	step    Step
	sel     reservation.Selection
	observe Observer
}

// New opens a wizard. today is normalized to local midnight; the slot list is
// generated once and stays stable for the wizard's lifetime.
func New(today time.Time, slots []schedule.Slot, observe Observer) *Wizard {
	today = calendar.Midnight(today)
	return &Wizard{
		today:   today,
		view:    calendar.ViewOf(today),
		slots:   slots,
		step:    StepDatetime,
		observe: observe,
		sel: reservation.Selection{
			Date:      today,
			People:    reservation.PeopleOptions()[0],
			TableType: reservation.TableHall,
		},
	}
}

func (w *Wizard) Step() Step                       { return w.step }
func (w *Wizard) Today() time.Time                 { return w.today }
func (w *Wizard) View() calendar.View              { return w.view }
func (w *Wizard) Slots() []schedule.Slot           { return w.slots }
func (w *Wizard) Selection() reservation.Selection { return w.sel }

// Grid returns the month grid for the current view and selection.
func (w *Wizard) Grid() []calendar.Cell {
	return calendar.BuildMonthGrid(w.view, w.today, w.sel.Date)
}

// PrevMonth steps the view back one month. Unbounded.
func (w *Wizard) PrevMonth() {
	if w.step != StepDatetime {
		return
	}
	w.view = w.view.Prev()
}

// NextMonth steps the view forward one month. Unbounded.
func (w *Wizard) NextMonth() {
	if w.step != StepDatetime {
		return
	}
	w.view = w.view.Next()
}

// SelectToday resets the view to today's month and selects today.
func (w *Wizard) SelectToday() {
	if w.step != StepDatetime {
		return
	}
	w.view = calendar.ViewOf(w.today)
	w.sel.Date = w.today
}

// SelectDate picks the given day number in the current view. Dates strictly
// before today are rejected and the selection is left unchanged.
func (w *Wizard) SelectDate(day int) bool {
	if w.step != StepDatetime || day < 1 || day > calendar.DaysIn(w.view.Year, w.view.Month) {
		return false
	}
	target := w.view.Date(day, w.today.Location())
	if target.Before(w.today) {
		return false
	}
	w.sel.Date = target
	return true
}

// SelectPeople picks a party-size label from the fixed set.
func (w *Wizard) SelectPeople(label string) bool {
	if w.step != StepDatetime || !reservation.ValidPeople(label) {
		return false
	}
	w.sel.People = label
	return true
}

// SelectSlot picks a session by id and notifies the observer.
func (w *Wizard) SelectSlot(id string) bool {
	if w.step != StepDatetime {
		return false
	}
	s, ok := schedule.FindByID(w.slots, id)
	if !ok {
		return false
	}
	w.sel.SessionID = s.ID
	w.sel.SessionLabel = s.Label
	if w.observe != nil {
		w.observe(s.ID)
	}
	return true
}

// SelectTableType picks the seating category on the second step.
func (w *Wizard) SelectTableType(t reservation.TableType) bool {
	if w.step != StepTableType || !t.Valid() {
		return false
	}
	w.sel.TableType = t
	return true
}

// CanAdvance reports whether the advance control is enabled. On the datetime
// step the binding constraint is slot selection (date and party size always
// hold a value); on the table-type step it is always satisfied on entry.
func (w *Wizard) CanAdvance() bool {
	if w.step == StepDatetime {
		return w.sel.SessionID != ""
	}
	return w.sel.TableType.Valid()
}

// Advance moves datetime -> tableType, or finalizes from tableType. done is
// true only on finalization; the returned Selection re-resolves the session
// label from the wizard's slot list and is the single exit point of the flow.
func (w *Wizard) Advance() (reservation.Selection, bool) {
	if !w.CanAdvance() {
		return reservation.Selection{}, false
	}
	if w.step == StepDatetime {
		w.step = StepTableType
		if !w.sel.TableType.Valid() {
			w.sel.TableType = reservation.TableHall
		}
		return reservation.Selection{}, false
	}
	out := w.sel
	if s, ok := schedule.FindByID(w.slots, w.sel.SessionID); ok {
		out.SessionLabel = s.Label
	}
	return out, true
}

// Retreat steps back from the table-type step, resetting the table choice to
// hall. From the datetime step it is not a transition: the returned closed flag
// asks the caller to dismiss the wizard, discarding the in-progress selection.
func (w *Wizard) Retreat() (closed bool) {
	if w.step == StepTableType {
		w.step = StepDatetime
		w.sel.TableType = reservation.TableHall
		return false
	}
	return true
}
