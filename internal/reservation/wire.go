package reservation

import (
	"errors"
	"fmt"
	"time"
)

// EnvelopeVersion is bumped when the wire shape changes incompatibly.
const EnvelopeVersion = 1

// ErrBadPayload marks a navigation payload that could not be decoded.
// Receivers treat it the same as a missing payload and fall back.
var ErrBadPayload = errors.New("bad reservation payload")

// Serialized is the wire form of a Selection. It is the only form allowed to
// cross a navigation boundary: the carrying medium holds text, so the date
// travels as RFC 3339 of local midnight with its offset kept. Keeping the
// offset means parsing restores the same calendar date regardless of the
// server's zone.
type Serialized struct {
	Date         string    `json:"date"`
	People       string    `json:"people"`
	SessionID    string    `json:"sessionId"`
	SessionLabel string    `json:"sessionLabel"`
	TableType    TableType `json:"tableType"`
}

// Envelope wraps the serialized selection with a version tag and the
// POI-derived fields forwarded alongside it.
type Envelope struct {
	V         int        `json:"v"`
	Selection Serialized `json:"selection"`
	PoiName   string     `json:"poiName,omitempty"`
}

// Serialize converts a live Selection to its wire form.
func Serialize(s Selection) Serialized {
	return Serialized{
		Date:         s.Date.Format(time.RFC3339),
		People:       s.People,
		SessionID:    s.SessionID,
		SessionLabel: s.SessionLabel,
		TableType:    s.TableType,
	}
}

// Deserialize parses the wire form back into a Selection. Any malformed field
// is reported as ErrBadPayload; callers render the missing-context fallback
// rather than surfacing the error.
func Deserialize(w Serialized) (Selection, error) {
	date, err := time.Parse(time.RFC3339, w.Date)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: date %q", ErrBadPayload, w.Date)
	}
	if !w.TableType.Valid() {
		return Selection{}, fmt.Errorf("%w: table type %q", ErrBadPayload, w.TableType)
	}
	if !ValidPeople(w.People) {
		return Selection{}, fmt.Errorf("%w: people %q", ErrBadPayload, w.People)
	}
	if (w.SessionID == "") != (w.SessionLabel == "") {
		return Selection{}, fmt.Errorf("%w: partial session", ErrBadPayload)
	}
	return Selection{
		Date:         date,
		People:       w.People,
		SessionID:    w.SessionID,
		SessionLabel: w.SessionLabel,
		TableType:    w.TableType,
	}, nil
}

// Decode validates the envelope version and deserializes its selection.
func (e Envelope) Decode() (Selection, error) {
	if e.V != EnvelopeVersion {
		return Selection{}, fmt.Errorf("%w: version %d", ErrBadPayload, e.V)
	}
	return Deserialize(e.Selection)
}

// NewEnvelope wraps a finalized selection for the navigation boundary.
func NewEnvelope(s Selection, poiName string) Envelope {
	return Envelope{V: EnvelopeVersion, Selection: Serialize(s), PoiName: poiName}
}
