package models

import "time"

// Contact is a user-owned address book entry. OwnerID is set once at
// creation from the authenticated identity and every repository statement
// filters by it.
type Contact struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"-"`
}
