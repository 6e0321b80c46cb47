package holiday

import "time"

// Type values for calendar entries.
const (
	TypeGlobal   = "GLOBAL"   // visible to all users, owned by none
	TypePersonal = "PERSONAL" // owned by a single user
	TypePiket    = "PIKET"    // converts a non-working day into a working day
)

type Holiday struct {
	ID         string
	Date       time.Time
	DateString string // canonical YYYY-MM-DD
	Name       string
	Type       string
	UserID     *string // nil for GLOBAL entries
	CreatedAt  time.Time
}
