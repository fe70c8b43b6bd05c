package models

import "time"

// Subscription tiers a user can hold.
const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

// User is the identity record behind every authenticated request.
// PasswordHash and Token never leave the server; transport layers build
// their own response shapes from the public fields.
//
// Token holds the single currently valid session token; the empty string
// means the user is logged out and every previously issued token is stale.
type User struct {
	ID                string
	Email             string
	PasswordHash      string
	Token             string
	Subscription      string
	Verify            bool
	VerificationToken string
	AvatarURL         string
	CreatedAt         time.Time
}

// ValidSubscription reports whether s is one of the known tiers.
func ValidSubscription(s string) bool {
	return s == SubscriptionStarter || s == SubscriptionPro || s == SubscriptionBusiness
}
