package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/poi-reserve/internal/schedule"
	"github.com/example/poi-reserve/internal/wizard"
)

const wizardCookieName = "poireserve_wizard"

// wizardTTL bounds how long an untouched wizard survives. A flow abandoned by
// navigating away never reaches Discard, so idle entries must expire on their
// own.
const wizardTTL = 30 * time.Minute

type wizardEntry struct {
	wiz      *wizard.Wizard
	lastSeen time.Time
}

// WizardStore holds one in-progress wizard per flow session, keyed by an
// opaque cookie id. A wizard belongs to a single rendering context; the store
// lock only guards the map itself.
type WizardStore struct {
	mu      sync.Mutex
	open    map[string]*wizardEntry
	now     func() time.Time
	observe wizard.Observer
}

func NewWizardStore(now func() time.Time, observe wizard.Observer) *WizardStore {
	if now == nil {
		now = time.Now
	}
	return &WizardStore{
		open:    make(map[string]*wizardEntry),
		now:     now,
		observe: observe,
	}
}

// Fetch returns the wizard for the request's session, opening a fresh one
// (and setting the session cookie) when none exists. Each call also sweeps
// idle sessions, so the map stays bounded by recent activity.
func (s *WizardStore) Fetch(w http.ResponseWriter, r *http.Request) *wizard.Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	if c, err := r.Cookie(wizardCookieName); err == nil {
		if e, ok := s.open[c.Value]; ok {
			e.lastSeen = now
			return e.wiz
		}
	}

	id := uuid.NewString()
	wz := wizard.New(now, schedule.DefaultSlots(), s.observe)
	s.open[id] = &wizardEntry{wiz: wz, lastSeen: now}
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return wz
}

// sweep drops entries no request has touched within the TTL. Callers hold mu.
func (s *WizardStore) sweep(now time.Time) {
	for id, e := range s.open {
		if now.Sub(e.lastSeen) > wizardTTL {
			delete(s.open, id)
		}
	}
}

// Discard drops the session's wizard, if any. Called on close and on
// finalization; in-progress selections are simply forgotten.
func (s *WizardStore) Discard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie(wizardCookieName); err == nil {
		delete(s.open, c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
