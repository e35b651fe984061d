package schedule

import "fmt"

// Default service day for restaurant sessions: 10:00 through 22:00 every 30 minutes.
const (
	DefaultStartHour       = 10
	DefaultEndHour         = 22
	DefaultIntervalMinutes = 30
)

// Slot is one bookable time-of-day option. IDs are synthetic counters
// ("session-1", "session-2", ...) used only as stable selection keys within a
// single wizard session; they carry no minute information.
type Slot struct {
	ID      string
	Label   string
	Minutes int // minutes from midnight
}

// Generate emits a slot every intervalMinutes from startHour*60 up to and
// including endHour*60. The loop terminates by minute value, so an interval
// that does not divide the span evenly still emits every in-range slot.
// End before start yields an empty sequence.
func Generate(startHour, endHour, intervalMinutes int) []Slot {
	if intervalMinutes <= 0 || endHour < startHour {
		return nil
	}
	var slots []Slot
	id := 1
	for minute := startHour * 60; minute <= endHour*60; minute += intervalMinutes {
		slots = append(slots, Slot{
			ID:      fmt.Sprintf("session-%d", id),
			Label:   FormatLabel(minute),
			Minutes: minute,
		})
		id++
	}
	return slots
}

// DefaultSlots returns the slot list for the default service day.
func DefaultSlots() []Slot {
	return Generate(DefaultStartHour, DefaultEndHour, DefaultIntervalMinutes)
}

// FormatLabel renders minutes-from-midnight on a 12-hour clock with a Korean
// AM/PM marker. Hour 0 and hour 12 both render as 12.
func FormatLabel(minutesFromMidnight int) string {
	hours := minutesFromMidnight / 60
	minutes := minutesFromMidnight % 60
	period := "오전"
	if hours >= 12 {
		period = "오후"
	}
	hour12 := hours % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%s %02d:%02d", period, hour12, minutes)
}

// FindByID resolves a slot id against a generated list. The second return is
// false for unknown ids.
func FindByID(slots []Slot, id string) (Slot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}
