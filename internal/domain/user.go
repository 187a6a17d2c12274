package domain

import (
	"strings"
	"time"
)

// SystemDisplayName is shown in place of intake bot accounts.
const SystemDisplayName = "System"

type User struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// IsIntakeBot reports whether the account was created by the intake pipeline.
func (u *User) IsIntakeBot() bool {
	return strings.Contains(u.DisplayName, "-intake")
}

// Label returns the name to render for the user.
func (u *User) Label() string {
	if u.IsIntakeBot() {
		return SystemDisplayName
	}
	return u.DisplayName
}
