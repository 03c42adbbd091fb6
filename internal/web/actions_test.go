package web

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTenantSuccess(t *testing.T) {
	srv, backend := newTestServer(t)

	rec := do(srv, postForm("/admin/tenants", "name=Ben+Ode&phone=555-0102&room_id=2&deposit=4000"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin?flash=Tenant+added+successfully&section=tenants", rec.Header().Get("Location"))
	assert.JSONEq(t, `{"name":"Ben Ode","phone":"555-0102","room_id":"2","deposit":"4000"}`,
		backend.body("POST /api/admin/tenants"))
	assert.Equal(t, 1, backend.count("GET /api/admin/tenants"), "tenants reloaded exactly once")
	assert.Zero(t, backend.count("GET /api/admin/rooms"), "the redirect target renders the page")

	page := follow(t, srv, rec)
	assert.Contains(t, page, "Tenant added successfully")
	assert.NotContains(t, page, `id="add-tenant-modal"`)
}

func TestAddTenantFragment(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.set("GET /api/admin/tenants", `[{"id":2,"name":"Ben Ode","rooms":{"room_number":"102"}}]`)

	rec := do(srv, htmx(postForm("/admin/tenants", "name=Ben+Ode&room_id=2")))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<tr><td>Ben Ode</td><td>102</td>"), body)
	assert.Contains(t, body, `<div id="messages" hx-swap-oob="true"><div class="flash" role="status">Tenant added successfully</div></div>`)
	assert.Contains(t, body, `<div id="add-tenant-modal-root" hx-swap-oob="true"></div>`)
	assert.NotContains(t, body, "<html")
	assert.Equal(t, 1, backend.total()-backend.count("POST /api/admin/tenants"), "only the tenant table reloads")
}

func TestAddTenantFragmentFailure(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.failWith("POST /api/admin/tenants", "User already registered")

	rec := do(srv, htmx(postForm("/admin/tenants", "name=Ben+Ode")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	body := rec.Body.String()
	assert.Contains(t, body, `role="alert">Error adding tenant: User already registered</div>`)
	assert.NotContains(t, body, "add-tenant-modal-root", "the open form is left as typed")
	assert.Equal(t, 1, backend.total())
}

func TestAddTenantFailure(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.failWith("POST /api/admin/tenants", "User already registered")

	rec := do(srv, postForm("/admin/tenants", "name=Ben+Ode&phone=555-0102"))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Error adding tenant: User already registered")
	assert.Contains(t, body, `id="add-tenant-modal"`)
	assert.Contains(t, body, `value="Ben Ode"`)
	assert.Contains(t, body, `value="555-0102"`)
	assert.Equal(t, 1, backend.count("POST /api/admin/tenants"))
}

func TestUpdateMaintenance(t *testing.T) {
	srv, backend := newTestServer(t)

	rec := do(srv, postForm("/admin/maintenance/9/status", "status=completed"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin?section=maintenance", rec.Header().Get("Location"))
	assert.JSONEq(t, `{"id":"9","status":"completed"}`, backend.body("PUT /api/admin/maintenance"))
	assert.Equal(t, 1, backend.count("GET /api/admin/maintenance"))
	assert.Contains(t, follow(t, srv, rec), `<section id="maintenance">`)
}

func TestUpdateMaintenanceFragment(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.set("GET /api/admin/maintenance", `[{"id":9,"title":"Leaking tap","status":"completed"}]`)

	rec := do(srv, htmx(postForm("/admin/maintenance/9/status", "status=completed")))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<td>Leaking tap</td><td>completed</td><td>Completed</td>")
	assert.Contains(t, body, `<div id="messages" hx-swap-oob="true"></div>`)
	assert.Empty(t, rec.Header().Get("HX-Reswap"))
}

func TestUpdateMaintenanceFragmentFailureSwapsTable(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.failWith("PUT /api/admin/maintenance", "Request not found")

	rec := do(srv, htmx(postForm("/admin/maintenance/404/status", "")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Reswap"))
	body := rec.Body.String()
	assert.Contains(t, body, "Leaking tap")
	assert.Contains(t, body, "Error: Request not found")
	assert.Equal(t, 1, backend.count("GET /api/admin/maintenance"))
}

func TestUpdateMaintenanceFailureStillReloads(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.failWith("PUT /api/admin/maintenance", "Request not found")

	rec := do(srv, postForm("/admin/maintenance/404/status", ""))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error: Request not found")
	assert.JSONEq(t, `{"id":"404","status":"completed"}`, backend.body("PUT /api/admin/maintenance"))
	assert.Equal(t, 1, backend.count("GET /api/admin/maintenance"))
}

func TestUpdateMaintenanceRejectsUnknownStatus(t *testing.T) {
	srv, backend := newTestServer(t)

	rec := do(srv, postForm("/admin/maintenance/9/status", "status=lost"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, backend.total())
}

func TestCompleteVacateAsksFirst(t *testing.T) {
	srv, backend := newTestServer(t)

	rec := do(srv, postForm("/admin/vacate/4/complete", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Are you sure you want to process this vacate request?")
	assert.Contains(t, body, `action="/admin/vacate/4/complete"`)
	assert.Zero(t, backend.total())
}

func TestCompleteVacateDeclined(t *testing.T) {
	srv, backend := newTestServer(t)

	rec := do(srv, postForm("/admin/vacate/4/complete", "_confirm=no"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin?section=vacate", rec.Header().Get("Location"))
	assert.Zero(t, backend.total())
}

func TestCompleteVacateConfirmed(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.set("GET /api/admin/vacate", `[{"id":4,"status":"completed","dues":0}]`)

	rec := do(srv, postForm("/admin/vacate/4/complete", "_confirm=yes"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin?section=vacate", rec.Header().Get("Location"))
	assert.JSONEq(t, `{"id":"4","status":"completed"}`, backend.body("PUT /api/admin/vacate"))
	assert.Equal(t, 1, backend.count("GET /api/admin/vacate"))
	assert.Contains(t, follow(t, srv, rec), "<td>Processed</td>")
}

func TestCompleteVacateFragment(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.set("GET /api/admin/vacate", `[{"id":4,"status":"completed","dues":0}]`)

	rec := do(srv, htmx(postForm("/admin/vacate/4/complete", "_confirm=yes")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<tr>"))
	assert.Contains(t, rec.Body.String(), "<td>Processed</td>")
	assert.Equal(t, 1, backend.count("PUT /api/admin/vacate"))
}

func TestFileVacateAsksFirst(t *testing.T) {
	srv, backend := newTestServer(t)

	rec := do(srv, postForm("/tenant/vacate", "vacate_date=2024-06-30&reason=Moving+out"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Are you sure you want to vacate? This action is irreversible.")
	assert.Contains(t, body, `<input type="hidden" name="reason" value="Moving out">`)
	assert.Contains(t, body, `<input type="hidden" name="vacate_date" value="2024-06-30">`)
	assert.Zero(t, backend.total())
}

func TestFileVacateDeclined(t *testing.T) {
	srv, backend := newTestServer(t)

	rec := do(srv, postForm("/tenant/vacate", "vacate_date=2024-06-30&reason=Moving&_confirm=no"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tenant?section=vacate", rec.Header().Get("Location"))
	assert.Zero(t, backend.total())
}

func TestFileVacateConfirmed(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.set("GET /api/tenant/vacate", `[{"status":"pending"}]`)

	rec := do(srv, postForm("/tenant/vacate", "vacate_date=2024-06-30&reason=Moving&_confirm=yes"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.JSONEq(t, `{"vacate_date":"2024-06-30","reason":"Moving"}`, backend.body("POST /api/tenant/vacate"))
	assert.Equal(t, 1, backend.count("GET /api/tenant/vacate"), "vacate status reloaded exactly once")

	body := follow(t, srv, rec)
	assert.Contains(t, body, "Vacate request submitted")
	assert.Contains(t, body, `<span id="vacate-status">pending</span>`)
}

func TestFileVacateFragment(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.set("GET /api/tenant/vacate", `[{"status":"pending"}]`)

	rec := do(srv, htmx(postForm("/tenant/vacate", "vacate_date=2024-06-30&reason=Moving&_confirm=yes")))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div id="vacate-panel">`), body)
	assert.Contains(t, body, `<div id="vacate-form-container" hidden>`)
	assert.Contains(t, body, `<span id="vacate-status">pending</span>`)
	assert.Contains(t, body, "Vacate request submitted")
	assert.Equal(t, 2, backend.total(), "one submission and one reload")
}

func TestFileMaintenanceFailureKeepsForm(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.failWith("POST /api/tenant/maintenance", "Title is required")

	rec := do(srv, postForm("/tenant/maintenance", "title=Leak&description=Under+the+sink"))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Error submitting request: Title is required")
	assert.Contains(t, body, `value="Leak"`)
	assert.Contains(t, body, "Under the sink</textarea>")
}

func TestFileMaintenanceSuccess(t *testing.T) {
	srv, backend := newTestServer(t)

	rec := do(srv, postForm("/tenant/maintenance", "title=Leak&description=Under+the+sink"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, backend.count("GET /api/tenant/maintenance"))

	body := follow(t, srv, rec)
	assert.Contains(t, body, "Request submitted")
	assert.NotContains(t, body, `value="Leak"`)
}

func TestFileMaintenanceFragmentResetsForm(t *testing.T) {
	srv, backend := newTestServer(t)

	rec := do(srv, htmx(postForm("/tenant/maintenance", "title=Leak&description=Under+the+sink")))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<tr><td colspan="3">No maintenance requests</td></tr>`)
	assert.Contains(t, body, `hx-target="#tenant-maintenance-table-body" hx-swap-oob="true"`)
	assert.Contains(t, body, `<input name="title" placeholder="Title" value="" required>`)
	assert.Equal(t, 1, backend.count("GET /api/tenant/maintenance"))
}

func TestFileMaintenanceFragmentFailureKeepsForm(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.failWith("POST /api/tenant/maintenance", "Title is required")

	rec := do(srv, htmx(postForm("/tenant/maintenance", "title=Leak")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	body := rec.Body.String()
	assert.Contains(t, body, "Error submitting request: Title is required")
	assert.NotContains(t, body, "maintenance-form")
	assert.Equal(t, 1, backend.total(), "nothing reloads after a failure")
}

func TestUploadPayment(t *testing.T) {
	srv, backend := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("month", "2024-03"))
	require.NoError(t, mw.WriteField("amount", "900"))
	part, err := mw.CreateFormFile("proof", "receipt.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/tenant/payments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := do(srv, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	sent := backend.body("POST /api/tenant/payments")
	assert.Contains(t, sent, `filename="receipt.png"`)
	assert.Contains(t, sent, "png-bytes")
	assert.Contains(t, sent, `name="month"`)
	assert.Equal(t, 1, backend.count("GET /api/tenant/payments"))
	assert.Contains(t, follow(t, srv, rec), "Payment proof uploaded!")
}

func TestUploadPaymentFailureReopensModal(t *testing.T) {
	srv, backend := newTestServer(t)
	backend.failWith("POST /api/tenant/payments", "No file uploaded")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("month", "2024-03"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/tenant/payments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := do(srv, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Error: No file uploaded")
	assert.Contains(t, body, `id="upload-payment-modal"`)
	assert.Contains(t, body, `value="2024-03"`)
}

func TestMutationResponsesKeepWorkingLinks(t *testing.T) {
	tests := []struct {
		name string
		fail string
		req  func() *http.Request
	}{
		{"add tenant", "", func() *http.Request { return postForm("/admin/tenants", "name=Ben") }},
		{"add tenant failure", "POST /api/admin/tenants", func() *http.Request { return postForm("/admin/tenants", "name=Ben") }},
		{"maintenance status failure", "PUT /api/admin/maintenance", func() *http.Request { return postForm("/admin/maintenance/9/status", "") }},
		{"file maintenance", "", func() *http.Request { return postForm("/tenant/maintenance", "title=Leak") }},
		{"file maintenance failure", "POST /api/tenant/maintenance", func() *http.Request { return postForm("/tenant/maintenance", "title=Leak") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, backend := newTestServer(t)
			if tt.fail != "" {
				backend.failWith(tt.fail, "rejected")
			}

			req := tt.req()
			rec := do(srv, req)
			body := rec.Body.String()
			base := req.URL
			if rec.Code == http.StatusSeeOther {
				base = mustParse(t, rec.Header().Get("Location"))
				body = follow(t, srv, rec)
			}

			hrefs := pageLinks(body)
			require.NotEmpty(t, hrefs)
			for _, href := range hrefs {
				target := base.ResolveReference(mustParse(t, href))
				got := do(srv, httptest.NewRequest("GET", target.String(), nil))
				assert.Equal(t, http.StatusOK, got.Code, "GET %s", target)
			}
		})
	}
}
