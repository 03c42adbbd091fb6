package tenancy

// Status values shared by maintenance and vacate requests.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// IsPending reports whether status still awaits admin action.
func IsPending(status string) bool {
	return status == StatusPending
}
