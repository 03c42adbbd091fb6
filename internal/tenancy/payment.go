package tenancy

// Payment is a rent payment, optionally evidenced by an uploaded proof.
// Tenant is only joined in the admin listing.
type Payment struct {
	ID       Text    `json:"id"`
	Month    string  `json:"month"`
	Amount   Text    `json:"amount"`
	Status   string  `json:"status"`
	ProofURL string  `json:"proof_url,omitempty"`
	PaidDate string  `json:"paid_date,omitempty"`
	Tenant   *Tenant `json:"tenants,omitempty"`
}

// HasProof reports whether a proof file was uploaded for the payment.
func (p Payment) HasProof() bool {
	return p.ProofURL != ""
}
