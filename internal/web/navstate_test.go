package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/poi-reserve/internal/reservation"
)

func testNavState(t *testing.T) *NavState {
	t.Helper()
	hash := make([]byte, 32)
	block := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(i)
		block[i] = byte(255 - i)
	}
	return NewNavState(hash, block)
}

func testEnvelope() reservation.Envelope {
	return reservation.NewEnvelope(reservation.Selection{
		Date:         time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
		People:       "2명",
		SessionID:    "session-19",
		SessionLabel: "오후 07:00",
		TableType:    reservation.TableRoom,
	}, "한옥 다이닝")
}

func TestNavState_SetPop(t *testing.T) {
	nav := testNavState(t)

	rec := httptest.NewRecorder()
	require.NoError(t, nav.Set(rec, testEnvelope()))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/poi/rest-001/reservation/confirm", nil)
	req.AddCookie(cookies[0])
	env, ok := nav.Pop(httptest.NewRecorder(), req)
	require.True(t, ok)
	assert.Equal(t, "한옥 다이닝", env.PoiName)

	sel, err := env.Decode()
	require.NoError(t, err)
	assert.Equal(t, "오후 07:00", sel.SessionLabel)
	assert.Equal(t, 20, sel.Date.Day())
}

func TestNavState_PopWithoutCookie(t *testing.T) {
	nav := testNavState(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := nav.Pop(httptest.NewRecorder(), req)
	assert.False(t, ok)
}

func TestNavState_PopClearsCookie(t *testing.T) {
	nav := testNavState(t)

	rec := httptest.NewRecorder()
	require.NoError(t, nav.Set(rec, testEnvelope()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	popRec := httptest.NewRecorder()
	_, ok := nav.Pop(popRec, req)
	require.True(t, ok)

	cleared := popRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, navCookieName, cleared[0].Name)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestNavState_TamperedCookieRejected(t *testing.T) {
	nav := testNavState(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: navCookieName, Value: "garbage"})
	_, ok := nav.Pop(httptest.NewRecorder(), req)
	assert.False(t, ok)
}
