package users

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// Repository is the credential store: every identity lookup and mutation
// the auth flows need.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// UpdateToken sets the user's current session token; nil clears it,
	// which invalidates every previously issued token at once.
	UpdateToken(ctx context.Context, id string, token *string) error

	UpdateSubscription(ctx context.Context, id string, subscription string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id string, avatarURL string) (*models.User, error)

	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	MarkVerified(ctx context.Context, id string) error
}
