package contacts

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// ListFilter narrows a listing to one page and, optionally, to a favorite
// state. Limit/Offset are assumed already clamped by the service layer.
type ListFilter struct {
	Favorite *bool
	Limit    int
	Offset   int
}

// Update carries the mutable contact fields; nil means "leave unchanged".
type Update struct {
	Name  *string
	Email *string
	Phone *string
}

// Repository is the ownership-scoped contact store. Every method takes the
// owner's identity and matches rows on both id and owner, so a contact
// belonging to someone else is indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	List(ctx context.Context, ownerID string, filter ListFilter) ([]*models.Contact, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Contact, error)
	Update(ctx context.Context, ownerID, id string, upd Update) (*models.Contact, error)
	Delete(ctx context.Context, ownerID, id string) (*models.Contact, error)
	SetFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error)
}
