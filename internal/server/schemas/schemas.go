// Package schemas contains one typed validator per request payload shape.
// Each validator returns a structured list of field errors instead of
// throwing; an empty list means the payload is valid. Handlers respond 400
// with the first message.
package schemas

import (
	"net/mail"
	"regexp"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// MinPasswordLength is the minimum accepted password size.
const MinPasswordLength = 6

// phoneRe accepts digits with common separators, 3 to 30 characters.
var phoneRe = regexp.MustCompile(`^[0-9()+\-\s]{3,30}$`)

// FieldError names the offending field and a human-readable message.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the validation outcome: empty means valid.
type Errors []FieldError

// OK reports whether the payload passed validation.
func (e Errors) OK() bool { return len(e) == 0 }

// Message returns the first error message, or "" when valid.
func (e Errors) Message() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// AuthRequest is the shared register/login payload.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r AuthRequest) Validate() Errors {
	var errs Errors
	if r.Email == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	} else if !validEmail(r.Email) {
		errs = append(errs, FieldError{"email", "Email must be a valid email"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	} else if len(r.Password) < MinPasswordLength {
		errs = append(errs, FieldError{"password", "Password must be at least 6 characters"})
	}
	return errs
}

// SubscriptionRequest updates the caller's subscription tier.
type SubscriptionRequest struct {
	Subscription string `json:"subscription"`
}

func (r SubscriptionRequest) Validate() Errors {
	if !models.ValidSubscription(r.Subscription) {
		return Errors{{"subscription", "Invalid subscription value"}}
	}
	return nil
}

// ResendVerificationRequest asks for a fresh verification email.
type ResendVerificationRequest struct {
	Email string `json:"email"`
}

func (r ResendVerificationRequest) Validate() Errors {
	if r.Email == "" {
		return Errors{{"email", "missing required field email"}}
	}
	if !validEmail(r.Email) {
		return Errors{{"email", "Email must be a valid email"}}
	}
	return nil
}

// CreateContactRequest is the full contact payload.
type CreateContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite *bool  `json:"favorite"`
}

func (r CreateContactRequest) Validate() Errors {
	var errs Errors
	if r.Name == "" {
		errs = append(errs, FieldError{"name", "Name is required"})
	}
	if r.Email == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	} else if !validEmail(r.Email) {
		errs = append(errs, FieldError{"email", "Email must be a valid email"})
	}
	if r.Phone == "" {
		errs = append(errs, FieldError{"phone", "Phone is required"})
	} else if !phoneRe.MatchString(r.Phone) {
		errs = append(errs, FieldError{"phone", "Phone must be a valid phone number"})
	}
	return errs
}

// UpdateContactRequest is a partial contact payload: absent fields stay
// unchanged, but at least one field must be present.
type UpdateContactRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (r UpdateContactRequest) Validate() Errors {
	if r.Name == nil && r.Email == nil && r.Phone == nil {
		return Errors{{"body", "Body must have at least one field"}}
	}
	var errs Errors
	if r.Name != nil && *r.Name == "" {
		errs = append(errs, FieldError{"name", "Name must not be empty"})
	}
	if r.Email != nil && !validEmail(*r.Email) {
		errs = append(errs, FieldError{"email", "Email must be a valid email"})
	}
	if r.Phone != nil && !phoneRe.MatchString(*r.Phone) {
		errs = append(errs, FieldError{"phone", "Phone must be a valid phone number"})
	}
	return errs
}

// FavoriteRequest toggles the favorite flag; the boolean must be present.
type FavoriteRequest struct {
	Favorite *bool `json:"favorite"`
}

func (r FavoriteRequest) Validate() Errors {
	if r.Favorite == nil {
		return Errors{{"favorite", "Body must contain 'favorite' field with a boolean value"}}
	}
	return nil
}
