package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/poi-reserve/internal/analytics"
	"github.com/example/poi-reserve/internal/calendar"
	"github.com/example/poi-reserve/internal/poi"
	"github.com/example/poi-reserve/internal/reservation"
)

//go:embed templates/*.html
var fs embed.FS

type Server struct {
	Pois    poi.Finder
	Wizards *WizardStore
	Nav     *NavState
	Tracker *analytics.Tracker
	Log     *zap.Logger
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /poi/{poiId}", s.handleDetail)
	mux.HandleFunc("GET /poi/{poiId}/reserve", s.handleReserve)
	mux.HandleFunc("POST /poi/{poiId}/reserve", s.handleReserveAction)
	mux.HandleFunc("GET /poi/{poiId}/reservation/confirm", s.handleConfirm)
	mux.HandleFunc("POST /poi/{poiId}/reservation/confirm", s.handleConfirmSubmit)
	mux.HandleFunc("GET /poi/{poiId}/reservation/success", s.handleSuccess)
	mux.HandleFunc("POST /poi/{poiId}/reservation/success", s.handleSuccessAction)

	// unknown paths navigate home, mirroring the catch-all route
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})

	return s.logging(s.pageViews(mux))
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if s.Log != nil {
			s.Log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)))
		}
	})
}

func (s *Server) pageViews(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path != "/healthz" {
			s.Tracker.PageView(r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

// --- home / detail ---

type homeData struct {
	Title  string
	Filter string
	Pois   []poi.Poi
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	filter := strings.TrimSpace(r.URL.Query().Get("filter"))
	var (
		pois []poi.Poi
		err  error
	)
	if filter != "" {
		pois, err = s.Pois.ListByCategory(ctx, poi.Category(filter))
	} else {
		pois, err = s.Pois.ListAll(ctx)
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.render(w, "templates/home.html", homeData{Title: "주변 탐색", Filter: filter, Pois: pois})
}

type detailData struct {
	Title string
	Poi   poi.Poi
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := s.Pois.FindByID(ctx, r.PathValue("poiId"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	s.render(w, "templates/detail.html", detailData{Title: p.Name, Poi: p})
}

// --- reservation wizard ---

type chip struct {
	ID       string
	Label    string
	Selected bool
}

type reserveData struct {
	Title       string
	Poi         poi.Poi
	Step        string
	ViewLabel   string
	DayLabels   [7]string
	Grid        []calendar.Cell
	People      []chip
	Slots       []chip
	TableHall   bool
	TableRoom   bool
	CanAdvance  bool
	CancelLabel string
}

func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := s.Pois.FindByID(ctx, r.PathValue("poiId"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	wz := s.Wizards.Fetch(w, r)
	sel := wz.Selection()

	data := reserveData{
		Title:       p.Name,
		Poi:         p,
		Step:        string(wz.Step()),
		ViewLabel:   fmt.Sprintf("%d.%02d", wz.View().Year, int(wz.View().Month)),
		DayLabels:   reservation.DayLabels,
		Grid:        wz.Grid(),
		TableHall:   sel.TableType == reservation.TableHall,
		TableRoom:   sel.TableType == reservation.TableRoom,
		CanAdvance:  wz.CanAdvance(),
		CancelLabel: "닫기",
	}
	if wz.Step() != "datetime" {
		data.CancelLabel = "이전"
	}
	for _, o := range reservation.PeopleOptions() {
		data.People = append(data.People, chip{ID: o, Label: o, Selected: o == sel.People})
	}
	for _, sl := range wz.Slots() {
		data.Slots = append(data.Slots, chip{ID: sl.ID, Label: sl.Label, Selected: sl.ID == sel.SessionID})
	}
	s.render(w, "templates/reserve.html", data)
}

func (s *Server) handleReserveAction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	poiID := r.PathValue("poiId")
	p, err := s.Pois.FindByID(ctx, poiID)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wz := s.Wizards.Fetch(w, r)
	reservePath := "/poi/" + poiID + "/reserve"

	switch r.FormValue("action") {
	case "today":
		wz.SelectToday()
	case "prev-month":
		wz.PrevMonth()
	case "next-month":
		wz.NextMonth()
	case "select-date":
		day, _ := strconv.Atoi(r.FormValue("day"))
		wz.SelectDate(day)
	case "select-people":
		wz.SelectPeople(r.FormValue("people"))
	case "select-session":
		wz.SelectSlot(r.FormValue("session"))
	case "select-table":
		wz.SelectTableType(reservation.TableType(r.FormValue("table")))
	case "next":
		sel, done := wz.Advance()
		if done {
			// single exit point: the live selection stops here, only its
			// wire form crosses to the confirm screen
			if err := s.Nav.Set(w, reservation.NewEnvelope(sel, "")); err != nil {
				s.serverError(w, err)
				return
			}
			s.Wizards.Discard(w, r)
			http.Redirect(w, r, "/poi/"+poiID+"/reservation/confirm", http.StatusSeeOther)
			return
		}
	case "cancel":
		if wz.Retreat() {
			s.Wizards.Discard(w, r)
			http.Redirect(w, r, "/poi/"+p.ID, http.StatusSeeOther)
			return
		}
	}

	http.Redirect(w, r, reservePath, http.StatusSeeOther)
}

// --- confirmation screen ---

type confirmData struct {
	Title    string
	Poi      poi.Poi
	Summary  string
	Purposes []chip
	Note     string
	Wire     reservation.Serialized
	V        int
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	poiID := r.PathValue("poiId")
	p, perr := s.Pois.FindByID(ctx, poiID)

	env, ok := s.Nav.Pop(w, r)
	sel, derr := env.Decode()
	if !ok || derr != nil || perr != nil {
		s.renderConfirmFallback(w, poiID)
		return
	}

	s.renderConfirm(w, p, sel, nil, "")
}

func (s *Server) renderConfirm(w http.ResponseWriter, p poi.Poi, sel reservation.Selection, chosen map[string]bool, note string) {
	data := confirmData{
		Title:   p.Name,
		Poi:     p,
		Summary: sel.Summary(),
		Note:    note,
		Wire:    reservation.Serialize(sel),
		V:       reservation.EnvelopeVersion,
	}
	for _, o := range reservation.PurposeOptions {
		data.Purposes = append(data.Purposes, chip{ID: o, Label: o, Selected: chosen[o]})
	}
	s.render(w, "templates/confirm.html", data)
}

func (s *Server) renderConfirmFallback(w http.ResponseWriter, poiID string) {
	// escape to the detail path whenever an id is present, resolvable or not
	escape := "/"
	if poiID != "" {
		escape = "/poi/" + poiID
	}
	s.render(w, "templates/fallback.html", fallbackData{
		Title:       "예약 확인",
		Message:     "예약 정보를 불러올 수 없습니다.",
		EscapeHref:  escape,
		EscapeLabel: "이전 페이지로 이동",
	})
}

func (s *Server) handleConfirmSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	poiID := r.PathValue("poiId")
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, perr := s.Pois.FindByID(ctx, poiID)
	env := envelopeFromForm(r)
	sel, derr := env.Decode()
	if derr != nil || perr != nil {
		s.renderConfirmFallback(w, poiID)
		return
	}

	chosen := map[string]bool{}
	for _, purpose := range r.Form["purpose"] {
		chosen[purpose] = true
	}

	// submission is a no-op without consent; the control is disabled
	// client-side but the rule holds here regardless
	if r.FormValue("consent") == "" {
		s.renderConfirm(w, p, sel, chosen, r.FormValue("note"))
		return
	}

	s.Tracker.Event("reservation_submit", analytics.Params{
		"poi_id":     p.ID,
		"session_id": sel.SessionID,
		"table_type": string(sel.TableType),
	})

	// the selection is forwarded unchanged, now joined by the POI name
	if err := s.Nav.Set(w, reservation.NewEnvelope(sel, p.Name)); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/poi/"+poiID+"/reservation/success", http.StatusSeeOther)
}

// --- success screen ---

type successData struct {
	Title           string
	Poi             poi.Poi
	PoiName         string
	DateText        string
	TimeText        string
	PeopleText      string
	Wire            reservation.Serialized
	V               int
	Recommendations []poi.Poi
	ViewAllHref     string
}

func (s *Server) handleSuccess(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	poiID := r.PathValue("poiId")
	p, perr := s.Pois.FindByID(ctx, poiID)

	env, ok := s.Nav.Pop(w, r)
	sel, derr := env.Decode()
	if !ok || derr != nil || perr != nil || env.PoiName == "" {
		s.render(w, "templates/fallback.html", fallbackData{
			Title:       "예약 완료",
			Message:     "예약 완료 정보를 표시할 수 없습니다.",
			EscapeHref:  "/",
			EscapeLabel: "홈으로 이동",
		})
		return
	}

	recs, err := s.Pois.ListByCategory(ctx, p.Category)
	if err != nil {
		recs = nil
	}
	var filtered []poi.Poi
	for _, rec := range recs {
		if rec.ID != p.ID && len(filtered) < 3 {
			filtered = append(filtered, rec)
		}
	}

	s.render(w, "templates/success.html", successData{
		Title:           "예약 완료",
		Poi:             p,
		PoiName:         env.PoiName,
		DateText:        sel.DateText(),
		TimeText:        sel.SessionLabel,
		PeopleText:      sel.PeopleText(),
		Wire:            env.Selection,
		V:               env.V,
		Recommendations: filtered,
		ViewAllHref:     "/?filter=" + string(p.Category),
	})
}

// handleSuccessAction services "view reservation detail": the same envelope
// is re-attached and the navigation replaces the success entry.
func (s *Server) handleSuccessAction(w http.ResponseWriter, r *http.Request) {
	poiID := r.PathValue("poiId")
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.FormValue("action") != "view-detail" {
		http.Redirect(w, r, "/poi/"+poiID+"/reservation/success", http.StatusSeeOther)
		return
	}

	env := envelopeFromForm(r)
	if _, err := env.Decode(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err := s.Nav.Set(w, env); err != nil {
		s.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/poi/"+poiID+"/reservation/confirm", http.StatusSeeOther)
}

// --- shared plumbing ---

type fallbackData struct {
	Title       string
	Message     string
	EscapeHref  string
	EscapeLabel string
}

// envelopeFromForm rebuilds the wire envelope from the hidden text fields a
// screen carries through its form POST.
func envelopeFromForm(r *http.Request) reservation.Envelope {
	v, _ := strconv.Atoi(r.FormValue("v"))
	return reservation.Envelope{
		V: v,
		Selection: reservation.Serialized{
			Date:         r.FormValue("date"),
			People:       r.FormValue("people"),
			SessionID:    r.FormValue("session_id"),
			SessionLabel: r.FormValue("session_label"),
			TableType:    reservation.TableType(r.FormValue("table_type")),
		},
		PoiName: r.FormValue("poi_name"),
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	t, err := template.ParseFS(fs, "templates/base.html", name)
	if err != nil {
		s.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		s.serverError(w, err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	if s.Log != nil {
		s.Log.Error("render failed", zap.Error(err))
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if log != nil {
		log.Info("listening", zap.String("addr", addr))
	}
	return srv.ListenAndServe()
}
