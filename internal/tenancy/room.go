package tenancy

import "fmt"

// Room is a physical unit that may be occupied by a tenant.
type Room struct {
	ID         Text `json:"id"`
	RoomNumber Text `json:"room_number"`
	Floor      Text `json:"floor"`
	Occupied   bool `json:"occupied"`
}

// Label is the room select caption, e.g. "101 (Floor 1)".
func (r Room) Label() string {
	return fmt.Sprintf("%s (Floor %s)", r.RoomNumber, r.Floor)
}

// Available returns the rooms that are not occupied, preserving order.
func Available(rooms []Room) []Room {
	var out []Room
	for _, r := range rooms {
		if !r.Occupied {
			out = append(out, r)
		}
	}
	return out
}

// roomNumberOr returns the room number of r or fallback when r is nil.
func roomNumberOr(r *Room, fallback string) string {
	if r == nil {
		return fallback
	}
	return r.RoomNumber.String()
}
