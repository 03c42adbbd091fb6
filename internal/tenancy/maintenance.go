package tenancy

import "time"

// MaintenanceRequest is a tenant-reported issue requiring admin resolution.
type MaintenanceRequest struct {
	ID          Text    `json:"id"`
	CreatedAt   string  `json:"created_at"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	Tenant      *Tenant `json:"tenants,omitempty"`
}

// createdLayouts are the timestamp shapes the API is known to send.
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CreatedDate renders created_at as a calendar date (01/02/2006).
// Unparseable values are returned unchanged.
func (m MaintenanceRequest) CreatedDate() string {
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, m.CreatedAt); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return m.CreatedAt
}

// Pending reports whether the request can still be marked complete.
func (m MaintenanceRequest) Pending() bool {
	return IsPending(m.Status)
}
