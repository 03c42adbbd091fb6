package dashboard

// Container ids on the admin page.
const (
	ContainerTenantTable      = "tenant-table-body"
	ContainerRoomSelect       = "room-select"
	ContainerPaymentTable     = "payment-table-body"
	ContainerAdminMaintenance = "maintenance-table-body-admin"
	ContainerAdminVacate      = "vacate-table-body-admin"
)

// Container ids on the tenant page.
const (
	ContainerProfileCard       = "profile-card"
	ContainerTenantPayments    = "tenant-payment-table-body"
	ContainerTenantMaintenance = "tenant-maintenance-table-body"
	ContainerVacateForm        = "vacate-form-container"
	ContainerExistingVacate    = "existing-vacate-request"
	ContainerVacateStatus      = "vacate-status"
)

// Sections and modals.
const (
	SectionTenants     = "tenants"
	SectionPayments    = "payments"
	SectionMaintenance = "maintenance"
	SectionVacate      = "vacate"
	SectionProfile     = "profile"

	ModalAddTenant     = "add-tenant-modal"
	ModalUploadPayment = "upload-payment-modal"
)

// AdminSections lists the admin page sections in display order.
var AdminSections = []string{SectionTenants, SectionPayments, SectionMaintenance, SectionVacate}

// TenantSections lists the tenant page sections in display order.
var TenantSections = []string{SectionProfile, SectionPayments, SectionMaintenance, SectionVacate}

// Paths the admin and tenant pages are served at.
const (
	AdminPath  = "/admin"
	TenantPath = "/tenant"
)

// NewAdminView creates the admin page view state.
func NewAdminView() *View {
	return NewPageView(AdminPath, AdminSections, []string{ModalAddTenant})
}

// NewTenantView creates the tenant page view state.
func NewTenantView() *View {
	return NewPageView(TenantPath, TenantSections, []string{ModalUploadPayment})
}
