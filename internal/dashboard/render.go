package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/evcraddock/rentdesk/internal/tenancy"
)

//go:embed templates/*.html
var templateFS embed.FS

var fragments = template.Must(template.New("").Funcs(template.FuncMap{
	"confirmProcessVacate": func() string { return ConfirmProcessVacate },
}).ParseFS(templateFS, "templates/*.html"))

// Fallbacks for joined records the API did not include.
const (
	fallbackTenantRoom  = "N/A"
	fallbackProfileRoom = "Unassigned"
	fallbackRoom        = "-"
)

// emptyRow renders the placeholder shown when a table has no records.
func emptyRow(cols int, message string) template.HTML {
	return template.HTML(fmt.Sprintf(`<tr><td colspan="%d">%s</td></tr>`, cols, template.HTMLEscapeString(message)))
}

func execute(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// replaceWith renders rows into target, or the placeholder when there are none.
func replaceWith(target *Container, name string, rows interface{}, n, cols int, empty string) error {
	if n == 0 {
		target.Replace(emptyRow(cols, empty))
		return nil
	}
	html, err := execute(name, rows)
	if err != nil {
		return err
	}
	target.Replace(html)
	return nil
}

type tenantRow struct {
	Name, Room, Phone, JoinDate, Deposit string
}

func renderTenants(_ *Page, target *Container, tenants []tenancy.Tenant) error {
	rows := make([]tenantRow, len(tenants))
	for i := range tenants {
		t := &tenants[i]
		rows[i] = tenantRow{
			Name:     t.Name,
			Room:     t.RoomOr(fallbackTenantRoom),
			Phone:    t.Phone,
			JoinDate: t.JoinDate,
			Deposit:  t.Deposit.String(),
		}
	}
	return replaceWith(target, "tenant-rows", rows, len(rows), 5, "No tenants yet")
}

type roomOption struct {
	ID, Label string
}

// renderRoomOptions lists the unoccupied rooms after the default option.
func renderRoomOptions(_ *Page, target *Container, rooms []tenancy.Room) error {
	available := tenancy.Available(rooms)
	opts := make([]roomOption, len(available))
	for i, r := range available {
		opts[i] = roomOption{ID: r.ID.String(), Label: r.Label()}
	}
	html, err := execute("room-options", opts)
	if err != nil {
		return err
	}
	target.Replace(html)
	return nil
}

type adminPaymentRow struct {
	Month, Tenant, Room, Amount, ProofURL, Status string
}

func renderAdminPayments(_ *Page, target *Container, payments []tenancy.Payment) error {
	rows := make([]adminPaymentRow, len(payments))
	for i, p := range payments {
		rows[i] = adminPaymentRow{
			Month:    p.Month,
			Tenant:   p.Tenant.NameOr(""),
			Room:     p.Tenant.RoomOr(fallbackRoom),
			Amount:   p.Amount.String(),
			ProofURL: p.ProofURL,
			Status:   p.Status,
		}
	}
	return replaceWith(target, "admin-payment-rows", rows, len(rows), 6, "No payments found for this period")
}

type adminMaintenanceRow struct {
	ID, Date, Tenant, Room, Title, Status string
	Pending                               bool
}

func renderAdminMaintenance(_ *Page, target *Container, requests []tenancy.MaintenanceRequest) error {
	rows := make([]adminMaintenanceRow, len(requests))
	for i, r := range requests {
		rows[i] = adminMaintenanceRow{
			ID:      r.ID.String(),
			Date:    r.CreatedDate(),
			Tenant:  r.Tenant.NameOr(""),
			Room:    r.Tenant.RoomOr(fallbackRoom),
			Title:   r.Title,
			Status:  r.Status,
			Pending: r.Pending(),
		}
	}
	return replaceWith(target, "admin-maintenance-rows", rows, len(rows), 6, "No maintenance requests")
}

type adminVacateRow struct {
	ID, Date, Tenant, Reason, Dues, Status string
	Pending                                bool
}

func renderAdminVacate(_ *Page, target *Container, requests []tenancy.VacateRequest) error {
	rows := make([]adminVacateRow, len(requests))
	for i, r := range requests {
		rows[i] = adminVacateRow{
			ID:      r.ID.String(),
			Date:    r.VacateDate,
			Tenant:  r.Tenant.NameOr(""),
			Reason:  r.Reason,
			Dues:    r.Dues.String(),
			Status:  r.Status,
			Pending: r.Pending(),
		}
	}
	return replaceWith(target, "admin-vacate-rows", rows, len(rows), 6, "No vacate requests")
}

type profileCard struct {
	Name, Room, Phone, Email, Deposit, JoinDate string
}

func renderProfile(_ *Page, target *Container, t *tenancy.Tenant) error {
	if t == nil {
		return fmt.Errorf("empty profile")
	}
	html, err := execute("profile-card", profileCard{
		Name:     t.Name,
		Room:     t.RoomOr(fallbackProfileRoom),
		Phone:    t.Phone,
		Email:    t.Email,
		Deposit:  t.Deposit.String(),
		JoinDate: t.JoinDate,
	})
	if err != nil {
		return err
	}
	target.Replace(html)
	return nil
}

type tenantPaymentRow struct {
	Month, Amount, PaidDate, Status string
}

func renderTenantPayments(_ *Page, target *Container, payments []tenancy.Payment) error {
	rows := make([]tenantPaymentRow, len(payments))
	for i, p := range payments {
		rows[i] = tenantPaymentRow{
			Month:    p.Month,
			Amount:   p.Amount.String(),
			PaidDate: p.PaidDate,
			Status:   p.Status,
		}
	}
	return replaceWith(target, "tenant-payment-rows", rows, len(rows), 4, "No payments yet")
}

type tenantMaintenanceRow struct {
	Date, Title, Status string
}

func renderTenantMaintenance(_ *Page, target *Container, requests []tenancy.MaintenanceRequest) error {
	rows := make([]tenantMaintenanceRow, len(requests))
	for i, r := range requests {
		rows[i] = tenantMaintenanceRow{
			Date:   r.CreatedDate(),
			Title:  r.Title,
			Status: r.Status,
		}
	}
	return replaceWith(target, "tenant-maintenance-rows", rows, len(rows), 3, "No maintenance requests")
}

// renderVacateStatus swaps the vacate form for the status display while a
// request is pending. Without a pending request the page is left as is.
func renderVacateStatus(page *Page, form *Container, requests []tenancy.VacateRequest) error {
	active := tenancy.ActiveVacate(requests)
	if active == nil {
		return nil
	}
	form.Hide()
	if status := page.Container(ContainerExistingVacate); status != nil {
		status.Show()
	}
	if text := page.Container(ContainerVacateStatus); text != nil {
		text.Replace(template.HTML(template.HTMLEscapeString(active.Status)))
	}
	return nil
}
