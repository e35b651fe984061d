package reservation

import (
	"fmt"
	"time"
)

// TableType is the seating category for a reservation.
type TableType string

const (
	TableHall TableType = "hall"
	TableRoom TableType = "room"
)

// Label returns the display name shown on screens.
func (t TableType) Label() string {
	if t == TableRoom {
		return "룸"
	}
	return "홀"
}

// Valid reports whether t is one of the two known table types.
func (t TableType) Valid() bool {
	return t == TableHall || t == TableRoom
}

// DayLabels are the weekday display names, Sunday first.
var DayLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// PurposeOptions are the visit-purpose tags offered on the confirmation
// screen. Free multi-toggle, no minimum or maximum.
var PurposeOptions = []string{"데이트", "친목", "가족식사", "생일", "기념일", "여행", "비즈니스미팅", "소개팅", "기타"}

const maxParty = 9

// PeopleOptions returns the closed party-size label set ("1명" .. "9명").
// Free-form counts are never accepted.
func PeopleOptions() []string {
	opts := make([]string, maxParty)
	for i := range opts {
		opts[i] = fmt.Sprintf("%d명", i+1)
	}
	return opts
}

// ValidPeople reports whether label belongs to the fixed party-size set.
func ValidPeople(label string) bool {
	for _, o := range PeopleOptions() {
		if o == label {
			return true
		}
	}
	return false
}

// Selection is the full set of user choices describing one reservation
// request. Date is midnight-normalized in the location the wizard opened in.
// SessionID and SessionLabel are both empty or both set.
type Selection struct {
	Date         time.Time
	People       string
	SessionID    string
	SessionLabel string
	TableType    TableType
}

// Summary renders the single-line reservation summary used by the
// confirmation screen, e.g. "3월 20일 (수) · 오후 07:00 · 2명 · 룸".
func (s Selection) Summary() string {
	return fmt.Sprintf("%s · %s · %s · %s", s.DateText(), s.SessionLabel, s.People, s.TableType.Label())
}

// DateText renders the date portion, e.g. "3월 20일 (수)".
func (s Selection) DateText() string {
	return fmt.Sprintf("%d월 %d일 (%s)", int(s.Date.Month()), s.Date.Day(), DayLabels[int(s.Date.Weekday())])
}

// PeopleText renders the party/table portion used by the success screen,
// e.g. "2명 · 룸".
func (s Selection) PeopleText() string {
	return fmt.Sprintf("%s · %s", s.People, s.TableType.Label())
}
