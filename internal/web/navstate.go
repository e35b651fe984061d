package web

import (
	"net/http"

	"github.com/gorilla/securecookie"

	"github.com/example/poi-reserve/internal/reservation"
)

const navCookieName = "poireserve_nav"

// NavState carries the serialized reservation envelope across a redirect, the
// server-side equivalent of a navigation state payload. The cookie is a
// text-only medium, which is why only the wire form of a selection may enter
// it. Payloads are popped read-once at mount; an abandoned flow leaves nothing
// behind but an expired cookie.
type NavState struct {
	sc *securecookie.SecureCookie
}

func NewNavState(hashKey, blockKey []byte) *NavState {
	sc := securecookie.New(hashKey, blockKey)
	// a hand-off should be consumed by the immediately following request
	sc.MaxAge(5 * 60)
	return &NavState{sc: sc}
}

// Set attaches the envelope to the next navigation.
func (n *NavState) Set(w http.ResponseWriter, env reservation.Envelope) error {
	encoded, err := n.sc.Encode(navCookieName, env)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     navCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop reads and clears the envelope. The second return is false when no
// payload is attached or it fails to decode; callers fall back either way.
func (n *NavState) Pop(w http.ResponseWriter, r *http.Request) (reservation.Envelope, bool) {
	c, err := r.Cookie(navCookieName)
	if err != nil {
		return reservation.Envelope{}, false
	}
	n.clear(w)
	var env reservation.Envelope
	if err := n.sc.Decode(navCookieName, c.Value, &env); err != nil {
		return reservation.Envelope{}, false
	}
	return env, true
}

func (n *NavState) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     navCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
