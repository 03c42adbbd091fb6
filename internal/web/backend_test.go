package web

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evcraddock/rentdesk/internal/client"
)

// fakeBackend is an in-memory tenancy API that counts every request.
type fakeBackend struct {
	t *testing.T

	mu       sync.Mutex
	hits     map[string]int
	bodies   map[string]string
	queries  map[string]string
	cookies  map[string]string
	fail     map[string]string
	payloads map[string]string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	f := &fakeBackend{
		t:        t,
		hits:     map[string]int{},
		bodies:   map[string]string{},
		queries:  map[string]string{},
		cookies:  map[string]string{},
		fail:     map[string]string{},
		payloads: map[string]string{},
	}
	f.payloads["GET /api/admin/tenants"] = `[{"id":1,"name":"Asha Rao","phone":"555-0101","join_date":"2024-01-05","deposit":5000,"rooms":{"room_number":"101"}}]`
	f.payloads["GET /api/admin/rooms"] = `[{"id":1,"room_number":"101","floor":1,"occupied":true},{"id":2,"room_number":"102","floor":1,"occupied":false}]`
	f.payloads["GET /api/admin/payments"] = `[]`
	f.payloads["GET /api/admin/maintenance"] = `[{"id":9,"created_at":"2024-03-05T10:00:00","title":"Leaking tap","status":"pending","tenants":{"name":"Asha Rao"}}]`
	f.payloads["GET /api/admin/vacate"] = `[{"id":4,"vacate_date":"2024-06-30","reason":"Moving","dues":0,"status":"pending","tenants":{"name":"Asha Rao"}}]`
	f.payloads["GET /api/tenant/profile"] = `{"id":1,"name":"Asha Rao","email":"asha@example.com","deposit":5000,"join_date":"2024-01-05"}`
	f.payloads["GET /api/tenant/payments"] = `[]`
	f.payloads["GET /api/tenant/maintenance"] = `[]`
	f.payloads["GET /api/tenant/vacate"] = `[]`

	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)
	return f, ts
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.hits[key]++
	f.bodies[key] = string(body)
	f.queries[key] = r.URL.RawQuery
	f.cookies[key] = r.Header.Get("Cookie")
	failMsg, failing := f.fail[key]
	payload, ok := f.payloads[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case failing:
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": failMsg})
	case ok:
		_, _ = io.WriteString(w, payload)
	case r.Method == http.MethodGet:
		http.NotFound(w, r)
	default:
		_, _ = io.WriteString(w, `{"success":true}`)
	}
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.hits {
		n += c
	}
	return n
}

func (f *fakeBackend) body(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

func (f *fakeBackend) query(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[key]
}

func (f *fakeBackend) cookie(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cookies[key]
}

func (f *fakeBackend) set(key, payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads[key] = payload
}

func (f *fakeBackend) failWith(key, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[key] = message
}

// newTestServer creates a dashboard server over a fresh fake backend.
func newTestServer(t *testing.T) (*Server, *fakeBackend) {
	t.Helper()
	backend, ts := newFakeBackend(t)
	srv, err := NewServer(client.New(ts.URL, ""), Options{})
	require.NoError(t, err)
	return srv, backend
}

func do(srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func postForm(path, body string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// htmx marks req as sent by htmx.
func htmx(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}

// follow performs the GET a redirect points at and returns the page.
func follow(t *testing.T, srv http.Handler, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	page := do(srv, httptest.NewRequest("GET", rec.Header().Get("Location"), nil))
	require.Equal(t, http.StatusOK, page.Code)
	return page.Body.String()
}

var hrefPattern = regexp.MustCompile(`href="([^"]*)"`)

// pageLinks returns the same-site hrefs on a rendered page.
func pageLinks(body string) []string {
	var links []string
	for _, m := range hrefPattern.FindAllStringSubmatch(body, -1) {
		href := html.UnescapeString(m[1])
		if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "?") {
			links = append(links, href)
		}
	}
	return links
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
