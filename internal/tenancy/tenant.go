package tenancy

// Tenant is a person renting a room.
type Tenant struct {
	ID       Text   `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Deposit  Text   `json:"deposit"`
	JoinDate string `json:"join_date"`
	Room     *Room  `json:"rooms,omitempty"`
}

// RoomOr returns the assigned room number, or fallback when none is joined.
func (t *Tenant) RoomOr(fallback string) string {
	if t == nil {
		return fallback
	}
	return roomNumberOr(t.Room, fallback)
}

// NameOr returns the tenant name, or fallback for a missing tenant.
func (t *Tenant) NameOr(fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Name
}
