package dashboard

import (
	"context"
	"net/url"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/tenancy"
)

// TenantAPI is the part of the tenancy API the tenant dashboard uses.
type TenantAPI interface {
	Profile(ctx context.Context) (*tenancy.Tenant, error)
	MyPayments(ctx context.Context) ([]tenancy.Payment, error)
	UploadPayment(ctx context.Context, fields map[string]string, proof client.File) error
	MyMaintenance(ctx context.Context) ([]tenancy.MaintenanceRequest, error)
	CreateMaintenance(ctx context.Context, fields map[string]string) error
	MyVacateRequests(ctx context.Context) ([]tenancy.VacateRequest, error)
	CreateVacate(ctx context.Context, fields map[string]string) error
}

// ConfirmVacate is asked before a tenant files a vacate request.
const ConfirmVacate = "Are you sure you want to vacate? This action is irreversible."

// NewTenantPage creates a page carrying every tenant container. The vacate
// status display starts hidden behind the vacate form.
func NewTenantPage() *Page {
	return NewPage(
		NewContainer(ContainerProfileCard, ""),
		NewContainer(ContainerTenantPayments, ""),
		NewContainer(ContainerTenantMaintenance, ""),
		NewContainer(ContainerVacateForm, ""),
		NewHiddenContainer(ContainerExistingVacate, ""),
		NewContainer(ContainerVacateStatus, ""),
	)
}

// TenantBoard wires the signed-in tenant's loaders and mutators to one page.
type TenantBoard struct {
	Page            *Page
	Profile         *Loader[*tenancy.Tenant]
	Payments        *Loader[[]tenancy.Payment]
	Maintenance     *Loader[[]tenancy.MaintenanceRequest]
	VacateStatus    *Loader[[]tenancy.VacateRequest]
	UploadPayment   *Mutator
	FileMaintenance *Mutator
	FileVacate      *Mutator
}

// NewTenantBoard creates the tenant loaders and mutators over page.
func NewTenantBoard(page *Page, api TenantAPI, opts ...Option) *TenantBoard {
	o := buildOptions(opts)
	b := &TenantBoard{Page: page}

	b.Profile = NewLoader("tenant_profile", page, ContainerProfileCard,
		func(ctx context.Context, _ url.Values) (*tenancy.Tenant, error) {
			return api.Profile(ctx)
		}, renderProfile, o.recorder)
	b.Payments = NewLoader("tenant_payments", page, ContainerTenantPayments,
		func(ctx context.Context, _ url.Values) ([]tenancy.Payment, error) {
			return api.MyPayments(ctx)
		}, renderTenantPayments, o.recorder)
	b.Maintenance = NewLoader("tenant_maintenance", page, ContainerTenantMaintenance,
		func(ctx context.Context, _ url.Values) ([]tenancy.MaintenanceRequest, error) {
			return api.MyMaintenance(ctx)
		}, renderTenantMaintenance, o.recorder)
	b.VacateStatus = NewLoader("tenant_vacate", page, ContainerVacateForm,
		func(ctx context.Context, _ url.Values) ([]tenancy.VacateRequest, error) {
			return api.MyVacateRequests(ctx)
		}, renderVacateStatus, o.recorder)

	b.UploadPayment = NewMutator(MutatorConfig{
		Name:    "upload_payment",
		Success: "Payment proof uploaded!",
		Submit: func(ctx context.Context, form *Form) error {
			var proof client.File
			if form.File != nil {
				proof = *form.File
			}
			return api.UploadPayment(ctx, form.Fields(), proof)
		},
		Reload:   b.Payments,
		Recorder: o.recorder,
	})
	b.FileMaintenance = NewMutator(MutatorConfig{
		Name:    "file_maintenance",
		Success: "Request submitted",
		Failure: "Error submitting request",
		Submit: func(ctx context.Context, form *Form) error {
			return api.CreateMaintenance(ctx, form.Fields())
		},
		Reload:   b.Maintenance,
		Recorder: o.recorder,
	})
	b.FileVacate = NewMutator(MutatorConfig{
		Name:    "file_vacate",
		Confirm: ConfirmVacate,
		Success: "Vacate request submitted",
		Failure: "Error submitting vacate request",
		Submit: func(ctx context.Context, form *Form) error {
			return api.CreateVacate(ctx, form.Fields())
		},
		Reload:   b.VacateStatus,
		Recorder: o.recorder,
	})

	return b
}

// Loaders returns every tenant loader.
func (b *TenantBoard) Loaders() Group {
	return Group{b.Profile, b.Payments, b.Maintenance, b.VacateStatus}
}
