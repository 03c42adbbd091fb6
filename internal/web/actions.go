package web

import (
	"errors"
	"net/http"
	"net/url"
	"sort"

	"github.com/gorilla/mux"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/tenancy"
)

// maxUploadSize bounds a payment proof upload.
const maxUploadSize = 10 << 20 // 10 MB

// formPrompter answers a confirmation from the submitted _confirm field.
type formPrompter string

func (p formPrompter) Confirm(string) bool {
	return p == "yes"
}

type hiddenField struct {
	Name, Value string
}

type confirmData struct {
	Message string
	Action  string
	Cancel  string
	Fields  []hiddenField
}

// confirmFirst renders the yes/no prompt when the submission carries no
// answer yet and reports whether it did. Nothing is sent to the API.
func (s *Server) confirmFirst(w http.ResponseWriter, r *http.Request, message, cancel string) bool {
	if r.PostForm.Get(dashboard.ConfirmField) != "" {
		return false
	}

	var fields []hiddenField
	for name, values := range r.PostForm {
		for _, v := range values {
			fields = append(fields, hiddenField{Name: name, Value: v})
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	s.render(w, http.StatusOK, "confirm.html", confirmData{
		Message: message,
		Action:  r.URL.Path,
		Cancel:  cancel,
		Fields:  fields,
	})
	return true
}

func section(page, id string) string {
	return page + "?" + url.Values{"section": {id}}.Encode()
}

// handleAddTenant submits the add-tenant form.
func (s *Server) handleAddTenant(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := requestContext(r)
	board := s.newAdminBoard()
	view := dashboard.NewAdminView()
	view.ShowSection(dashboard.SectionTenants)

	form := dashboard.NewForm(r.PostForm)
	out := board.AddTenant.Run(ctx, form, nil)
	if out.OK {
		view.CloseModal(dashboard.ModalAddTenant)
	} else {
		view.OpenModal(dashboard.ModalAddTenant)
	}

	s.respond(w, r, mutation{
		view:    view,
		page:    board.Page,
		loaders: board.Loaders(),
		out:     out,
		form:    form,
		swap:    dashboard.ContainerTenantTable,
		reset:   dashboard.SectionTenants,
	})
}

// handleUpdateMaintenance changes a maintenance request's status.
func (s *Server) handleUpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	status := r.PostForm.Get("status")
	if status == "" {
		status = tenancy.StatusCompleted
	}
	if status != tenancy.StatusPending && status != tenancy.StatusCompleted {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	ctx := requestContext(r)
	board := s.newAdminBoard()
	view := dashboard.NewAdminView()
	view.ShowSection(dashboard.SectionMaintenance)

	out := board.UpdateMaintenance(ctx, mux.Vars(r)["id"], status)

	s.respond(w, r, mutation{
		view:     view,
		page:     board.Page,
		loaders:  board.Loaders(),
		out:      out,
		swap:     dashboard.ContainerAdminMaintenance,
		reloaded: true,
	})
}

// handleCompleteVacate processes a vacate request after confirmation.
func (s *Server) handleCompleteVacate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	back := section(dashboard.AdminPath, dashboard.SectionVacate)
	if s.confirmFirst(w, r, dashboard.ConfirmProcessVacate, back) {
		return
	}

	ctx := requestContext(r)
	board := s.newAdminBoard()
	out := board.CompleteVacate(ctx, mux.Vars(r)["id"], formPrompter(r.PostForm.Get(dashboard.ConfirmField)))
	if out.Declined {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	view := dashboard.NewAdminView()
	view.ShowSection(dashboard.SectionVacate)

	s.respond(w, r, mutation{
		view:     view,
		page:     board.Page,
		loaders:  board.Loaders(),
		out:      out,
		swap:     dashboard.ContainerAdminVacate,
		reloaded: true,
	})
}

// handleUploadPayment submits a payment with its proof file.
func (s *Server) handleUploadPayment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := dashboard.NewForm(r.PostForm)
	file, header, err := r.FormFile("proof")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	default:
		defer file.Close()
		form.File = &client.File{Field: "proof", Filename: header.Filename, Body: file}
	}

	s.runTenantMutation(w, r, tenantMutation{
		section: dashboard.SectionPayments,
		modal:   dashboard.ModalUploadPayment,
		swap:    dashboard.ContainerTenantPayments,
		form:    form,
		pick:    func(b *dashboard.TenantBoard) *dashboard.Mutator { return b.UploadPayment },
	})
}

// handleFileMaintenance submits a maintenance request.
func (s *Server) handleFileMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	s.runTenantMutation(w, r, tenantMutation{
		section: dashboard.SectionMaintenance,
		swap:    dashboard.ContainerTenantMaintenance,
		form:    dashboard.NewForm(r.PostForm),
		pick:    func(b *dashboard.TenantBoard) *dashboard.Mutator { return b.FileMaintenance },
	})
}

// handleFileVacate submits a vacate request after confirmation.
func (s *Server) handleFileVacate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if s.confirmFirst(w, r, dashboard.ConfirmVacate, section(dashboard.TenantPath, dashboard.SectionVacate)) {
		return
	}

	s.runTenantMutation(w, r, tenantMutation{
		section: dashboard.SectionVacate,
		swap:    dashboard.ContainerVacateForm,
		form:    dashboard.NewForm(r.PostForm),
		pick:    func(b *dashboard.TenantBoard) *dashboard.Mutator { return b.FileVacate },
	})
}

// tenantMutation describes one tenant form submission.
type tenantMutation struct {
	section string
	// modal, when set, stays open after a failure so the form can be fixed.
	modal string
	swap  string
	form  *dashboard.Form
	pick  func(*dashboard.TenantBoard) *dashboard.Mutator
}

// runTenantMutation runs one tenant mutator and responds with its outcome.
func (s *Server) runTenantMutation(w http.ResponseWriter, r *http.Request, tm tenantMutation) {
	board := s.newTenantBoard()

	out := tm.pick(board).Run(requestContext(r), tm.form, formPrompter(tm.form.Get(dashboard.ConfirmField)))
	if out.Declined {
		http.Redirect(w, r, section(dashboard.TenantPath, tm.section), http.StatusSeeOther)
		return
	}

	view := dashboard.NewTenantView()
	view.ShowSection(tm.section)
	if !out.OK && tm.modal != "" {
		view.OpenModal(tm.modal)
	}

	s.respond(w, r, mutation{
		view:    view,
		page:    board.Page,
		loaders: board.Loaders(),
		out:     out,
		form:    tm.form,
		swap:    tm.swap,
		reset:   tm.section,
	})
}

// mutation is a finished submission waiting for its response.
type mutation struct {
	view    *dashboard.View
	page    *dashboard.Page
	loaders dashboard.Group
	out     dashboard.Outcome
	form    *dashboard.Form
	// swap is the container the submitting element targets.
	swap string
	// reset names the section whose form is cleared after a success.
	reset string
	// reloaded is set for actions that reload their table even on failure.
	reloaded bool
}

// respond answers a submission. HTMX requests get the paired container and
// the messages as out-of-band swaps. A plain successful post redirects to
// the page so reloading it does not post again; a plain failure renders the
// page with the alert and the submitted values.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, m mutation) {
	if r.Header.Get("HX-Request") == "true" {
		s.respondFragment(w, m)
		return
	}

	if m.out.OK {
		q := url.Values{"section": {m.view.Active()}}
		if m.out.Message != "" {
			q.Set(paramFlash, m.out.Message)
		}
		http.Redirect(w, r, m.view.Path()+"?"+q.Encode(), http.StatusSeeOther)
		return
	}

	// Failed loads are logged and leave their container as first rendered.
	_ = m.loaders.LoadPending(requestContext(r))
	s.render(w, http.StatusBadGateway, pageTemplate(m.view), &pageData{
		View:  m.view,
		Page:  m.page,
		Alert: m.out.Message,
		Form:  m.form,
	})
}

// respondFragment writes the HTMX answer. htmx only swaps 2xx responses, so
// failures answer 200 too; a failed form leaves the target alone.
func (s *Server) respondFragment(w http.ResponseWriter, m mutation) {
	data := &pageData{View: m.view, Page: m.page, OOB: true}
	switch {
	case m.out.OK:
		data.Flash = m.out.Message
		data.Swap = m.swap
		data.Reset = m.reset
	case m.reloaded:
		data.Alert = m.out.Message
		data.Swap = m.swap
	default:
		data.Alert = m.out.Message
		w.Header().Set("HX-Reswap", "none")
	}
	s.render(w, http.StatusOK, outcomeTemplate(m.view), data)
}

func pageTemplate(v *dashboard.View) string {
	if v.Path() == dashboard.TenantPath {
		return "tenant.html"
	}
	return "admin.html"
}

func outcomeTemplate(v *dashboard.View) string {
	if v.Path() == dashboard.TenantPath {
		return "tenant-outcome"
	}
	return "admin-outcome"
}
