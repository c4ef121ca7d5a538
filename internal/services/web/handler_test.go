package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/festival/internal/services/web/adminauth"
	"github.com/louisbranch/festival/internal/services/web/mount"
	"github.com/louisbranch/festival/internal/services/web/pages"
	"github.com/louisbranch/festival/internal/services/web/platform/flash"
	"github.com/louisbranch/festival/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/festival/internal/services/web/storage"
	"github.com/louisbranch/festival/internal/services/web/storage/sqlite"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	testSecret   = "festival-test-secret-0123456789abcdef"
	testOrigin   = "http://example.com"
	testAdmin    = "gatekeeper"
	testPassword = "correct horse battery"
)

var testNow = time.Date(2026, 7, 17, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	handler http.Handler
	store   *sqlite.Store
}

func newTestEnv(t *testing.T, mutate ...func(*Config)) *testEnv {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "festival.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.PutPerformer(ctx, storage.Performer{ID: "p1", Name: "The Tide", Genre: "Folk", Headliner: true}); err != nil {
		t.Fatalf("put performer: %v", err)
	}
	hash, err := adminauth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := store.PutAdminUser(ctx, storage.AdminUser{ID: "a1", Username: testAdmin, PasswordHash: hash}); err != nil {
		t.Fatalf("put admin: %v", err)
	}

	config := Config{
		Store:         store,
		SessionSecret: testSecret,
		SessionTTL:    time.Hour,
		Metrics:       prometheus.NewRegistry(),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:           func() time.Time { return testNow },
	}
	for _, fn := range mutate {
		fn(&config)
	}
	handler, err := NewHandler(config)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return &testEnv{handler: handler, store: store}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return e.do(req)
}

func (e *testEnv) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", testOrigin)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return e.do(req)
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := e.post("/admin/login", url.Values{"username": {testAdmin}, "password": {testPassword}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	cookie := responseCookie(rec, sessioncookie.Name)
	if cookie == nil {
		t.Fatal("expected session cookie")
	}
	return cookie
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body:\n%s", want, body)
		}
	}
}

func TestNewHandlerValidatesConfig(t *testing.T) {
	if _, err := NewHandler(Config{SessionSecret: testSecret}); err == nil {
		t.Fatal("expected error without store")
	}
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "festival.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if _, err := NewHandler(Config{Store: store, SessionSecret: "short"}); err == nil {
		t.Fatal("expected error for short session secret")
	}
}

func TestPageMountsUnitIntoShell(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	assertContains(t, body,
		`<html lang="en" data-theme="light">`,
		`<main id="root" data-component="AboutPage"><div class="theme-scope" data-theme="light"><section class="unit" data-unit="AboutPage">`,
		"About the festival",
	)
	if strings.Contains(body, "Loading…") {
		t.Fatalf("placeholder should be replaced:\n%s", body)
	}
}

func TestPageAppliesThemePreference(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/lineup", &http.Cookie{Name: "theme", Value: "dark"})
	assertContains(t, rec.Body.String(), `data-theme="dark"`, "The Tide")
}

func TestPageWithoutHostSlotIsServed(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/privacy")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	assertContains(t, rec.Body.String(), "<h1>Privacy</h1>")
}

func TestUnknownPathServesNotFoundShell(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	assertContains(t, rec.Body.String(), "Page not found")
}

func TestHandlersShareMetricsRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := newTestEnv(t, func(c *Config) { c.Metrics = reg })
	second := newTestEnv(t, func(c *Config) { c.Metrics = reg })

	first.get("/lineup")
	second.get("/lineup")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, family := range families {
		if family.GetName() != "festival_unit_mounts_total" {
			continue
		}
		var total float64
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		if total != 2 {
			t.Fatalf("mount total = %v, want 2", total)
		}
		return
	}
	t.Fatal("festival_unit_mounts_total not gathered")
}

func TestFailedUnitStillServesShell(t *testing.T) {
	shells := fstest.MapFS{
		"broken.html":  {Data: []byte(`<html><body><main id="root" data-component="BrokenPage"><p>Loading</p></main></body></html>`)},
		"missing.html": {Data: []byte(`<html><body><main id="root" data-component="NonexistentUnit"><p>Loading</p></main></body></html>`)},
	}
	catalog, err := pages.NewCatalog(shells, []pages.Page{
		{Path: "/broken", File: "broken.html"},
		{Path: "/missing", File: "missing.html"},
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	registry, err := mount.NewRegistry(map[string]mount.Loader{
		"BrokenPage": func(context.Context) (templ.Component, error) { return nil, errors.New("boom") },
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	env := newTestEnv(t, func(c *Config) {
		c.Catalog = catalog
		c.Registry = registry
	})

	for _, path := range []string{"/broken", "/missing"} {
		rec := env.get(path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
		assertContains(t, rec.Body.String(), "<p>Loading</p>")
	}
}

func TestDeferredSlotPointsAtFragmentRoute(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/schedule")
	assertContains(t, rec.Body.String(), `hx-get="/_units/SchedulePage"`, `hx-trigger="load"`, "Loading…")

	rec = env.get("/_units/SchedulePage")
	if rec.Code != http.StatusOK {
		t.Fatalf("fragment status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `<div class="theme-scope" data-theme="light"><section class="unit" data-unit="SchedulePage">`) {
		t.Fatalf("unexpected fragment: %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("fragment should not contain the page shell: %s", body)
	}
}

func TestFragmentRouteLeavesPlaceholderWhenUnitDoesNotMount(t *testing.T) {
	registry, err := mount.NewRegistry(map[string]mount.Loader{
		"BrokenPage": func(context.Context) (templ.Component, error) { return nil, errors.New("boom") },
		"PanicPage":  func(context.Context) (templ.Component, error) { panic("loader exploded") },
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	env := newTestEnv(t, func(c *Config) {
		c.Catalog = fragmentCatalog(t)
		c.Registry = registry
	})

	for _, name := range []string{"NonexistentUnit", "BrokenPage", "PanicPage"} {
		rec := env.get("/_units/" + name)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("%s status = %d, want %d", name, rec.Code, http.StatusNoContent)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("%s body = %q, want empty", name, rec.Body.String())
		}
	}
}

func fragmentCatalog(t *testing.T) *pages.Catalog {
	t.Helper()
	catalog, err := pages.NewCatalog(fstest.MapFS{
		"broken.html": {Data: []byte(`<html><body><main id="root" data-component="BrokenPage" data-mount="deferred"><p>Loading</p></main></body></html>`)},
	}, []pages.Page{{Path: "/broken", File: "broken.html"}})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return catalog
}

func TestFragmentRouteHidesAdminUnits(t *testing.T) {
	env := newTestEnv(t)
	if rec := env.get("/_units/AdminTicketsPage"); rec.Code != http.StatusNotFound {
		t.Fatalf("public admin fragment status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := env.get("/admin/_units/AdminTicketsPage"); rec.Code != http.StatusSeeOther {
		t.Fatalf("anonymous admin fragment status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	session := env.login(t)
	rec := env.get("/admin/_units/AdminTicketsPage", session)
	assertContains(t, rec.Body.String(), `data-unit="AdminTicketsPage"`, "Signed in as gatekeeper")
}

func TestAdminPageRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/admin/tickets")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/admin/login?next=%2Fadmin%2Ftickets" {
		t.Fatalf("Location = %q", got)
	}
}

func TestAdminLoginLocksLightTheme(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)
	rec := env.get("/admin", session, &http.Cookie{Name: "theme", Value: "dark"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	assertContains(t, body, `<html lang="en" data-theme="light">`, "Signed in as gatekeeper", "Dashboard")
	if strings.Contains(body, `data-theme="dark"`) {
		t.Fatalf("admin page should stay light:\n%s", body)
	}

	rec = env.get("/admin/login", session)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin" {
		t.Fatalf("signed-in login page = %d %q, want redirect to /admin", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAdminLoginRedirectsToNext(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post("/admin/login", url.Values{
		"username": {testAdmin},
		"password": {testPassword},
		"next":     {"/admin/tickets"},
	})
	if got := rec.Header().Get("Location"); got != "/admin/tickets" {
		t.Fatalf("Location = %q, want /admin/tickets", got)
	}
}

func TestAdminLoginRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post("/admin/login", url.Values{"username": {testAdmin}, "password": {"wrong password!"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/admin/login?next=%2Fadmin" {
		t.Fatalf("Location = %q", got)
	}
	if responseCookie(rec, sessioncookie.Name) != nil {
		t.Fatal("did not expect a session cookie")
	}
	notice := responseCookie(rec, flash.CookieName)
	if notice == nil {
		t.Fatal("expected flash cookie")
	}
	page := env.get("/admin/login", notice)
	assertContains(t, page.Body.String(), "Invalid username or password.", `class="notice notice-error"`)
}

func TestFormsRejectCrossSitePosts(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://evil.example")
	if rec := env.do(req); rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRegisterCreatesRegistrationAndAudit(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{"name": {"Ada"}, "email": {"Ada@Example.com"}, "attendees": {"2"}}
	rec := env.post("/register", form)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/register" {
		t.Fatalf("register = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	ctx := context.Background()
	registrations, err := env.store.ListRegistrations(ctx, 10)
	if err != nil {
		t.Fatalf("list registrations: %v", err)
	}
	if len(registrations) != 1 || registrations[0].Email != "ada@example.com" || registrations[0].Attendees != 2 {
		t.Fatalf("registrations = %+v", registrations)
	}
	audit, err := env.store.ListAudit(ctx, 10)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(audit) != 1 || audit[0].Action != "registration.created" || audit[0].Actor != "public" {
		t.Fatalf("audit = %+v", audit)
	}

	page := env.get("/register", responseCookie(rec, flash.CookieName))
	assertContains(t, page.Body.String(), "Thanks for registering!")

	dup := env.post("/register", form)
	page = env.get("/register", responseCookie(dup, flash.CookieName))
	assertContains(t, page.Body.String(), "That email is already registered.")
}

func TestRegisterRejectsInvalidForm(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post("/register", url.Values{"name": {"Ada"}, "email": {"not-an-email"}, "attendees": {"2"}})
	page := env.get("/register", responseCookie(rec, flash.CookieName))
	assertContains(t, page.Body.String(), "Please check the form and try again.")
	registrations, err := env.store.ListRegistrations(context.Background(), 10)
	if err != nil {
		t.Fatalf("list registrations: %v", err)
	}
	if len(registrations) != 0 {
		t.Fatalf("registrations = %d, want 0", len(registrations))
	}
}

func TestTicketPurchaseShowsCode(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post("/tickets", url.Values{"tier": {"weekend"}, "name": {"Ada"}, "email": {"ada@example.com"}})
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/tickets?code=") {
		t.Fatalf("Location = %q", location)
	}
	tickets, err := env.store.ListTickets(context.Background(), 10)
	if err != nil {
		t.Fatalf("list tickets: %v", err)
	}
	if len(tickets) != 1 || tickets[0].PriceCents != 11000 {
		t.Fatalf("tickets = %+v", tickets)
	}
	page := env.get(location, responseCookie(rec, flash.CookieName))
	assertContains(t, page.Body.String(), "<strong>"+tickets[0].Code+"</strong>", "Your ticket is booked.")
}

func TestDonationUsesCustomAmount(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post("/donate", url.Values{"amount": {"25"}, "custom_amount": {"40"}, "email": {"fan@example.com"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	donations, err := env.store.ListDonations(context.Background(), 10)
	if err != nil {
		t.Fatalf("list donations: %v", err)
	}
	if len(donations) != 1 || donations[0].AmountCents != 4000 {
		t.Fatalf("donations = %+v", donations)
	}
}

func TestDonationRejectsOutOfRangeAmounts(t *testing.T) {
	env := newTestEnv(t)
	for _, amount := range []string{"0", "-5", "100001", "92233720368547759", "4611686018427387908", "99999999999999999999"} {
		rec := env.post("/donate", url.Values{"custom_amount": {amount}, "email": {"fan@example.com"}})
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/donate" {
			t.Fatalf("amount %s = %d %q, want redirect to /donate", amount, rec.Code, rec.Header().Get("Location"))
		}
		page := env.get("/donate", responseCookie(rec, flash.CookieName))
		assertContains(t, page.Body.String(), "Please check the form and try again.")
	}
	donations, err := env.store.ListDonations(context.Background(), 10)
	if err != nil {
		t.Fatalf("list donations: %v", err)
	}
	if len(donations) != 0 {
		t.Fatalf("donations = %+v, want none", donations)
	}

	rec := env.post("/donate", url.Values{"custom_amount": {"100000"}, "email": {"fan@example.com"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("max amount status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	donations, err = env.store.ListDonations(context.Background(), 10)
	if err != nil {
		t.Fatalf("list donations: %v", err)
	}
	if len(donations) != 1 || donations[0].AmountCents != 100_000_00 {
		t.Fatalf("donations = %+v, want one at the cap", donations)
	}
}

func TestCheckInMarksTicketOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.store.PutTicket(ctx, storage.Ticket{
		ID: "t1", Code: "ABCD-EFGH", HolderName: "Ada", HolderEmail: "ada@example.com", Tier: "day", PriceCents: 4500,
	}); err != nil {
		t.Fatalf("put ticket: %v", err)
	}
	session := env.login(t)

	rec := env.post("/admin/check-in", url.Values{"code": {"abcd-efgh"}}, session)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/check-in" {
		t.Fatalf("check-in = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	ticket, err := env.store.GetTicketByCode(ctx, "ABCD-EFGH")
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if ticket.CheckedInAt == nil || !ticket.CheckedInAt.Equal(testNow) {
		t.Fatalf("CheckedInAt = %v, want %v", ticket.CheckedInAt, testNow)
	}

	again := env.post("/admin/check-in", url.Values{"code": {"ABCD-EFGH"}}, session)
	page := env.get("/admin/check-in", session, responseCookie(again, flash.CookieName))
	assertContains(t, page.Body.String(), "That ticket was already checked in.")

	missing := env.post("/admin/check-in", url.Values{"code": {"ZZZZ-ZZZZ"}}, session)
	page = env.get("/admin/check-in", session, responseCookie(missing, flash.CookieName))
	assertContains(t, page.Body.String(), "No ticket matches that code.")

	audit, err := env.store.ListAudit(ctx, 10)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	actions := make([]string, 0, len(audit))
	for _, entry := range audit {
		actions = append(actions, entry.Action)
	}
	joined := strings.Join(actions, ",")
	if !strings.Contains(joined, "ticket.checked_in") || !strings.Contains(joined, "ticket.checkin_repeated") {
		t.Fatalf("audit actions = %s", joined)
	}
}

func TestCheckInRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post("/admin/check-in", url.Values{"code": {"ABCD-EFGH"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/login" {
		t.Fatalf("check-in = %d %q, want redirect to login", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)
	rec := env.post("/admin/logout", url.Values{}, session)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/login" {
		t.Fatalf("logout = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessioncookie.Name && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected session cookie to be cleared")
	}
	if rec := env.get("/admin", session); rec.Code != http.StatusSeeOther {
		t.Fatalf("replayed session after logout = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestPasswordResetEndsExistingSessions(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)
	if rec := env.get("/admin", session); rec.Code != http.StatusOK {
		t.Fatalf("dashboard = %d, want %d", rec.Code, http.StatusOK)
	}

	hash, err := adminauth.HashPassword("a brand new passphrase")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := env.store.PutAdminUser(context.Background(), storage.AdminUser{ID: "a1", Username: testAdmin, PasswordHash: hash}); err != nil {
		t.Fatalf("reset admin: %v", err)
	}
	rec := env.get("/admin", session)
	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get("Location"), "/admin/login") {
		t.Fatalf("dashboard after reset = %d %q, want redirect to login", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHTMXFormPostUsesHXRedirect(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/donate", strings.NewReader(url.Values{"amount": {"10"}, "email": {"fan@example.com"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("HX-Request", "true")
	rec := env.do(req)
	if rec.Code != http.StatusOK || rec.Header().Get("HX-Redirect") != "/donate" {
		t.Fatalf("htmx donate = %d %q", rec.Code, rec.Header().Get("HX-Redirect"))
	}
}

func TestHealthMetricsAndStatic(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", rec.Code, http.StatusOK)
	}
	assertContains(t, rec.Body.String(), `"status":"ok"`)

	env.get("/about")
	rec = env.get("/metrics")
	assertContains(t, rec.Body.String(), `festival_unit_mounts_total{outcome="mounted",unit="AboutPage"} 1`)

	rec = env.get("/static/festival.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("static status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestWrongMethodIsRejected(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/lineup", nil)
	if rec := env.do(req); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
