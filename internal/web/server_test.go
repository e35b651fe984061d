package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/poi-reserve/internal/analytics"
	"github.com/example/poi-reserve/internal/poi"
	"github.com/example/poi-reserve/internal/reservation"
)

// client drives the server like a browser: it carries cookies between
// requests and follows nothing automatically.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newTestServer(t *testing.T) (*Server, *client) {
	t.Helper()
	today := func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) }
	srv := &Server{
		Pois:    poi.NewMemoryRepo(nil),
		Wizards: NewWizardStore(today, nil),
		Nav:     testNavState(t),
		Tracker: analytics.NewTracker(nil),
		Log:     zap.NewNop(),
	}
	return srv, &client{t: t, handler: srv.Routes(), cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, form)
}

func TestHomeAndDetail(t *testing.T) {
	_, c := newTestServer(t)

	rec := c.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "한옥 다이닝")
	assert.Contains(t, rec.Body.String(), "국립현대미술관")

	rec = c.get("/?filter=culture")
	assert.NotContains(t, rec.Body.String(), "한옥 다이닝")
	assert.Contains(t, rec.Body.String(), "국립현대미술관")

	rec = c.get("/poi/rest-001")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "예약하기")

	// unresolvable id navigates home
	rec = c.get("/poi/nope")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestReserveFlow_EndToEnd(t *testing.T) {
	_, c := newTestServer(t)

	rec := c.get("/poi/rest-001/reserve")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2024.03")
	assert.Contains(t, rec.Body.String(), "오전 10:00")

	// advance is gated until a slot is chosen
	rec = c.post("/poi/rest-001/reserve", url.Values{"action": {"next"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = c.get("/poi/rest-001/reserve")
	assert.Contains(t, rec.Body.String(), "오늘") // still on the datetime step

	c.post("/poi/rest-001/reserve", url.Values{"action": {"select-date"}, "day": {"20"}})
	c.post("/poi/rest-001/reserve", url.Values{"action": {"select-people"}, "people": {"2명"}})
	c.post("/poi/rest-001/reserve", url.Values{"action": {"select-session"}, "session": {"session-19"}})

	rec = c.post("/poi/rest-001/reserve", url.Values{"action": {"next"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = c.get("/poi/rest-001/reserve")
	assert.Contains(t, rec.Body.String(), "테이블 타입 선택")

	c.post("/poi/rest-001/reserve", url.Values{"action": {"select-table"}, "table": {"room"}})
	rec = c.post("/poi/rest-001/reserve", url.Values{"action": {"next"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/poi/rest-001/reservation/confirm", rec.Header().Get("Location"))

	// confirm screen renders the summary from the handed-off selection
	rec = c.get("/poi/rest-001/reservation/confirm")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "3월 20일 (수) · 오후 07:00 · 2명 · 룸")
	assert.Contains(t, body, "방문 목적")

	// submit without consent is a no-op re-render
	form := url.Values{
		"v":             {"1"},
		"date":          {"2024-03-20T00:00:00Z"},
		"people":        {"2명"},
		"session_id":    {"session-19"},
		"session_label": {"오후 07:00"},
		"table_type":    {"room"},
		"purpose":       {"데이트", "기념일"},
	}
	rec = c.post("/poi/rest-001/reservation/confirm", form)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "예약하기")

	form.Set("consent", "on")
	rec = c.post("/poi/rest-001/reservation/confirm", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/poi/rest-001/reservation/success", rec.Header().Get("Location"))

	rec = c.get("/poi/rest-001/reservation/success")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "예약이 완료되었습니다")
	assert.Contains(t, body, "한옥 다이닝")
	assert.Contains(t, body, "3월 20일 (수)")
	assert.Contains(t, body, "오후 07:00")
	assert.Contains(t, body, "2명 · 룸")
	assert.Contains(t, body, "을지로 비스트로") // same-category recommendation
}

func TestReserveCancelClosesWizard(t *testing.T) {
	_, c := newTestServer(t)

	c.get("/poi/rest-001/reserve")
	rec := c.post("/poi/rest-001/reserve", url.Values{"action": {"cancel"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/poi/rest-001", rec.Header().Get("Location"))
	_, ok := c.cookies[wizardCookieName]
	assert.False(t, ok)
}

func TestConfirm_MissingState_Fallback(t *testing.T) {
	// Scenario: confirm mounted with no navigation state.
	_, c := newTestServer(t)

	rec := c.get("/poi/rest-001/reservation/confirm")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "예약 정보를 불러올 수 없습니다.")
	assert.Contains(t, body, `href="/poi/rest-001"`)
	assert.Contains(t, body, "이전 페이지로 이동")
}

func TestConfirm_MalformedPayload_Fallback(t *testing.T) {
	srv, c := newTestServer(t)

	env := reservation.Envelope{V: 1, Selection: reservation.Serialized{Date: "not-a-date", TableType: "hall"}}
	rec := httptest.NewRecorder()
	require.NoError(t, srv.Nav.Set(rec, env))
	c.cookies[navCookieName] = rec.Result().Cookies()[0]

	got := c.get("/poi/rest-001/reservation/confirm")
	assert.Equal(t, http.StatusOK, got.Code)
	assert.Contains(t, got.Body.String(), "예약 정보를 불러올 수 없습니다.")
}

func TestSuccess_MissingState_Fallback(t *testing.T) {
	_, c := newTestServer(t)

	rec := c.get("/poi/rest-001/reservation/success")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "예약 완료 정보를 표시할 수 없습니다.")
	assert.Contains(t, body, `href="/"`)
	assert.Contains(t, body, "홈으로 이동")
}

func TestSuccess_ViewDetail_CarriesSelectionForward(t *testing.T) {
	// Scenario: "view reservation detail" re-attaches the same envelope and
	// lands on confirm with the summary intact.
	_, c := newTestServer(t)

	form := url.Values{
		"action":        {"view-detail"},
		"v":             {"1"},
		"date":          {"2024-03-20T00:00:00Z"},
		"people":        {"2명"},
		"session_id":    {"session-19"},
		"session_label": {"오후 07:00"},
		"table_type":    {"room"},
		"poi_name":      {"한옥 다이닝"},
	}
	rec := c.post("/poi/rest-001/reservation/success", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/poi/rest-001/reservation/confirm", rec.Header().Get("Location"))

	got := c.get("/poi/rest-001/reservation/confirm")
	require.Equal(t, http.StatusOK, got.Code)
	assert.Contains(t, got.Body.String(), "3월 20일 (수) · 오후 07:00 · 2명 · 룸")
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	_, c := newTestServer(t)
	rec := c.get("/nowhere/at/all")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
