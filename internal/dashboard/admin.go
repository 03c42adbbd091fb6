package dashboard

import (
	"context"
	"net/url"

	"github.com/evcraddock/rentdesk/internal/tenancy"
)

// AdminAPI is the part of the tenancy API the admin dashboard uses.
type AdminAPI interface {
	ListTenants(ctx context.Context) ([]tenancy.Tenant, error)
	CreateTenant(ctx context.Context, fields map[string]string) error
	ListRooms(ctx context.Context) ([]tenancy.Room, error)
	ListPayments(ctx context.Context, month string) ([]tenancy.Payment, error)
	ListMaintenance(ctx context.Context) ([]tenancy.MaintenanceRequest, error)
	UpdateMaintenance(ctx context.Context, id, status string) error
	ListVacateRequests(ctx context.Context) ([]tenancy.VacateRequest, error)
	UpdateVacate(ctx context.Context, id, status string) error
}

// ConfirmProcessVacate is asked before an admin processes a vacate request.
const ConfirmProcessVacate = "Are you sure you want to process this vacate request?"

// NewAdminPage creates a page carrying every admin container.
func NewAdminPage() *Page {
	return NewPage(
		NewContainer(ContainerTenantTable, ""),
		NewContainer(ContainerRoomSelect, `<option value="">Select a room</option>`),
		NewContainer(ContainerPaymentTable, ""),
		NewContainer(ContainerAdminMaintenance, ""),
		NewContainer(ContainerAdminVacate, ""),
	)
}

// AdminBoard wires the admin loaders and mutators to one page.
type AdminBoard struct {
	Page        *Page
	Tenants     *Loader[[]tenancy.Tenant]
	Rooms       *Loader[[]tenancy.Room]
	Payments    *Loader[[]tenancy.Payment]
	Maintenance *Loader[[]tenancy.MaintenanceRequest]
	Vacate      *Loader[[]tenancy.VacateRequest]
	AddTenant   *Mutator

	api AdminAPI
	rec Recorder
}

// NewAdminBoard creates the admin loaders and mutators over page.
func NewAdminBoard(page *Page, api AdminAPI, opts ...Option) *AdminBoard {
	o := buildOptions(opts)
	b := &AdminBoard{Page: page, api: api, rec: o.recorder}

	b.Tenants = NewLoader("admin_tenants", page, ContainerTenantTable,
		func(ctx context.Context, _ url.Values) ([]tenancy.Tenant, error) {
			return api.ListTenants(ctx)
		}, renderTenants, o.recorder)
	b.Rooms = NewLoader("admin_rooms", page, ContainerRoomSelect,
		func(ctx context.Context, _ url.Values) ([]tenancy.Room, error) {
			return api.ListRooms(ctx)
		}, renderRoomOptions, o.recorder)
	b.Payments = NewLoader("admin_payments", page, ContainerPaymentTable,
		func(ctx context.Context, params url.Values) ([]tenancy.Payment, error) {
			return api.ListPayments(ctx, params.Get("month"))
		}, renderAdminPayments, o.recorder)
	b.Maintenance = NewLoader("admin_maintenance", page, ContainerAdminMaintenance,
		func(ctx context.Context, _ url.Values) ([]tenancy.MaintenanceRequest, error) {
			return api.ListMaintenance(ctx)
		}, renderAdminMaintenance, o.recorder)
	b.Vacate = NewLoader("admin_vacate", page, ContainerAdminVacate,
		func(ctx context.Context, _ url.Values) ([]tenancy.VacateRequest, error) {
			return api.ListVacateRequests(ctx)
		}, renderAdminVacate, o.recorder)

	b.AddTenant = NewMutator(MutatorConfig{
		Name:    "add_tenant",
		Success: "Tenant added successfully",
		Failure: "Error adding tenant",
		Submit: func(ctx context.Context, form *Form) error {
			return api.CreateTenant(ctx, form.Fields())
		},
		Reload:   b.Tenants,
		Recorder: o.recorder,
	})

	return b
}

// Loaders returns every admin loader.
func (b *AdminBoard) Loaders() Group {
	return Group{b.Tenants, b.Rooms, b.Payments, b.Maintenance, b.Vacate}
}

// LoadPayments reloads the payments table filtered to month ("" for all).
func (b *AdminBoard) LoadPayments(ctx context.Context, month string) error {
	var params url.Values
	if month != "" {
		params = url.Values{"month": {month}}
	}
	return b.Payments.LoadWith(ctx, params)
}

// UpdateMaintenance sets a maintenance request's status and reloads the
// maintenance table.
func (b *AdminBoard) UpdateMaintenance(ctx context.Context, id, status string) Outcome {
	return runAction(ctx, "update_maintenance", "", nil, b.rec, b.Maintenance, func(ctx context.Context) error {
		return b.api.UpdateMaintenance(ctx, id, status)
	})
}

// CompleteVacate marks a vacate request completed after confirmation and
// reloads the vacate table. Declining sends nothing.
func (b *AdminBoard) CompleteVacate(ctx context.Context, id string, prompt Prompter) Outcome {
	return runAction(ctx, "complete_vacate", ConfirmProcessVacate, prompt, b.rec, b.Vacate, func(ctx context.Context) error {
		return b.api.UpdateVacate(ctx, id, tenancy.StatusCompleted)
	})
}
