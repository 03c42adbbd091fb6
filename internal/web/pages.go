package web

import (
	"context"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evcraddock/rentdesk/internal/dashboard"
)

// paramFlash carries a success message across the redirect after a post.
const paramFlash = "flash"

// pageData is what the admin and tenant page templates render.
type pageData struct {
	View  *dashboard.View
	Page  *dashboard.Page
	Flash string
	Alert string
	// Month is the admin payments filter.
	Month string
	// Form holds the values of a submission that failed, for refilling.
	Form *dashboard.Form

	// Swap is the container an HTMX submission replaces.
	Swap string
	// OOB marks regions rendered as out-of-band swaps.
	OOB bool
	// Reset names the section whose form is sent back empty.
	Reset string
}

// ConfirmVacate is the question asked before a vacate request is filed.
func (d *pageData) ConfirmVacate() string {
	return dashboard.ConfirmVacate
}

// Fragment returns the current content of container id.
func (d *pageData) Fragment(id string) template.HTML {
	c := d.Page.Container(id)
	if c == nil {
		return ""
	}
	return c.Content()
}

// Hidden reports whether container id is hidden.
func (d *pageData) Hidden(id string) bool {
	c := d.Page.Container(id)
	return c != nil && !c.Visible()
}

// Value returns a field of the failed submission.
func (d *pageData) Value(field string) string {
	if d.Form == nil {
		return ""
	}
	return d.Form.Get(field)
}

func (s *Server) newAdminBoard() *dashboard.AdminBoard {
	return dashboard.NewAdminBoard(dashboard.NewAdminPage(), s.api(), s.opts...)
}

func (s *Server) newTenantBoard() *dashboard.TenantBoard {
	return dashboard.NewTenantBoard(dashboard.NewTenantPage(), s.api(), s.opts...)
}

// loadAdmin runs every admin loader that has not run yet. Payments honour
// the month filter.
func loadAdmin(ctx context.Context, board *dashboard.AdminBoard, month string) {
	// Failed loads are logged and leave their container as first rendered.
	if month != "" && board.Payments.Attempts() == 0 {
		_ = board.LoadPayments(ctx, month)
	}
	_ = board.Loaders().LoadPending(ctx)
}

// handleAdmin renders the admin dashboard.
func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := dashboard.NewAdminView()
	view.Apply(q)

	board := s.newAdminBoard()
	month := q.Get("month")
	loadAdmin(requestContext(r), board, month)

	s.render(w, http.StatusOK, "admin.html", &pageData{View: view, Page: board.Page, Month: month, Flash: q.Get(paramFlash)})
}

// handleTenant renders the signed-in tenant's dashboard.
func (s *Server) handleTenant(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := dashboard.NewTenantView()
	view.Apply(q)

	board := s.newTenantBoard()
	_ = board.Loaders().LoadPending(requestContext(r))

	s.render(w, http.StatusOK, "tenant.html", &pageData{View: view, Page: board.Page, Flash: q.Get(paramFlash)})
}

// handleAdminFragment reloads a single admin container for an HTMX swap.
func (s *Server) handleAdminFragment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["container"]
	board := s.newAdminBoard()

	loader := board.Loaders().Find(id)
	if loader == nil {
		http.NotFound(w, r)
		return
	}

	ctx := requestContext(r)
	var err error
	if id == dashboard.ContainerPaymentTable {
		err = board.LoadPayments(ctx, r.URL.Query().Get("month"))
	} else {
		err = loader.Load(ctx)
	}
	s.writeFragment(w, board.Page, id, err)
}

// handleTenantFragment reloads a single tenant container for an HTMX swap.
func (s *Server) handleTenantFragment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["container"]
	board := s.newTenantBoard()

	loader := board.Loaders().Find(id)
	if loader == nil {
		http.NotFound(w, r)
		return
	}

	err := loader.Load(requestContext(r))
	s.writeFragment(w, board.Page, id, err)
}

// writeFragment writes container id. A failed load answers 502 with no body
// so the browser keeps what it shows. Containers whose loader also toggles
// other regions render their "panel-<id>" template instead.
func (s *Server) writeFragment(w http.ResponseWriter, page *dashboard.Page, id string, err error) {
	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	if panel := s.templates.Lookup("panel-" + id); panel != nil {
		s.render(w, http.StatusOK, panel.Name(), &pageData{Page: page})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(page.Container(id).Content())); err != nil {
		http.Error(w, "Error writing fragment", http.StatusInternalServerError)
	}
}
