package entity

import (
	"time"
)

// Status values a user can carry. Creation always produces StatusActive;
// other values stored by external writers are passed through unvalidated.
const StatusActive = "ACTIVE"

// User is the aggregate root for the user domain.
// ID is empty until the aggregate has been persisted; the storage adapter
// assigns it on first save.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a not-yet-persisted user with StatusActive and both
// timestamps set to now. Email uniqueness is not checked here; that needs
// storage state and belongs to the domain service.
func NewUser(name, email, phone string) *User {
	now := time.Now().UTC()
	return &User{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
