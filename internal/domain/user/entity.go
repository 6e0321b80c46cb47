package user

import "time"

type User struct {
	ID                   string
	Name                 string
	Email                string
	PasswordHash         *string
	GoogleID             *string
	MonthlyTargetMinutes int
	YearlyTargetMinutes  int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasPassword reports whether the account can log in with credentials.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
