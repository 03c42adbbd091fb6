package tenancy

// VacateRequest is a tenant's request to end their tenancy.
type VacateRequest struct {
	ID         Text    `json:"id"`
	VacateDate string  `json:"vacate_date"`
	Reason     string  `json:"reason"`
	Dues       Text    `json:"dues"`
	Status     string  `json:"status"`
	Tenant     *Tenant `json:"tenants,omitempty"`
}

// Pending reports whether the request still awaits processing.
func (v VacateRequest) Pending() bool {
	return IsPending(v.Status)
}

// ActiveVacate returns the first pending request, or nil when there is none.
func ActiveVacate(requests []VacateRequest) *VacateRequest {
	for i := range requests {
		if requests[i].Pending() {
			return &requests[i]
		}
	}
	return nil
}
