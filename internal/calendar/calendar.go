// Package calendar holds the month-grid math for the reservation date picker.
// All date arithmetic for the flow lives here so month rollover and past-date
// rules are implemented once.
package calendar

import "time"

// Cell is one grid position of a month view. Day 0 marks a leading blank cell
// emitted before the 1st of the month.
type Cell struct {
	Day      int
	Today    bool
	Past     bool
	Selected bool
}

// View identifies the month currently shown in the picker.
type View struct {
	Year  int
	Month time.Month
}

// ViewOf returns the view containing t.
func ViewOf(t time.Time) View {
	return View{Year: t.Year(), Month: t.Month()}
}

// Prev steps one month back, wrapping into December of the previous year.
// Navigation is unbounded in both directions.
func (v View) Prev() View {
	if v.Month == time.January {
		return View{Year: v.Year - 1, Month: time.December}
	}
	return View{Year: v.Year, Month: v.Month - 1}
}

// Next steps one month forward, wrapping into January of the next year.
func (v View) Next() View {
	if v.Month == time.December {
		return View{Year: v.Year + 1, Month: time.January}
	}
	return View{Year: v.Year, Month: v.Month + 1}
}

// Date returns midnight of the given day number in this view, in loc.
func (v View) Date(day int, loc *time.Location) time.Time {
	return time.Date(v.Year, v.Month, day, 0, 0, 0, 0, loc)
}

// DaysIn returns the day count of the month (leap years included).
func DaysIn(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday index (0 = Sunday) of the 1st of the month.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// BuildMonthGrid emits FirstWeekday leading blanks followed by one cell per
// day. A day is Past when strictly before today, Today/Selected on calendar
// date equality. today and selected are expected midnight-normalized.
func BuildMonthGrid(v View, today, selected time.Time) []Cell {
	first := FirstWeekday(v.Year, v.Month)
	total := DaysIn(v.Year, v.Month)

	grid := make([]Cell, 0, first+total)
	for i := 0; i < first; i++ {
		grid = append(grid, Cell{})
	}
	for day := 1; day <= total; day++ {
		current := v.Date(day, today.Location())
		grid = append(grid, Cell{
			Day:      day,
			Today:    SameDate(current, today),
			Past:     current.Before(today),
			Selected: SameDate(current, selected),
		})
	}
	return grid
}

// SameDate reports calendar-date equality, ignoring time of day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Midnight truncates t to local midnight, keeping its location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
