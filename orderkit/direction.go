package orderkit

import "strings"

// Direction is the sort direction of an order. The zero value means no direction.
type Direction string

const (
	// Ascending sorts smallest first ("order by <col> ASC")
	Ascending Direction = "ASC"
	// Descending sorts largest first ("order by <col> DESC")
	Descending Direction = "DESC"
)

// ParseDirection reads "asc" or "desc" in any case. ok is false for anything else.
func ParseDirection(value string) (direction Direction, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(Ascending):
		return Ascending, true
	case string(Descending):
		return Descending, true
	}
	return "", false
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d Direction) String() string {
	return string(d)
}
