package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
)

// Paging defaults and bounds for contact listings.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ContactService performs CRUD on contact records, always scoped to the
// authenticated owner passed in by the transport layer. The owner is never
// taken from a request payload.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewContactService constructs a ContactService over the shared DB handle.
func NewContactService(db *sql.DB, m repomanager.RepositoryManager) *ContactService {
	return &ContactService{db: db, repomanager: m}
}

// List returns one page of the owner's contacts. Page and limit are clamped
// to sane positive values; favorite narrows the listing when non-nil.
func (s *ContactService) List(ctx context.Context, ownerID string, page, limit int, favorite *bool) ([]*models.Contact, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	repo := s.repomanager.Contacts(s.db)
	result, err := repo.List(ctx, ownerID, contacts.ListFilter{
		Favorite: favorite,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	return result, nil
}

// Get returns the contact only when it belongs to ownerID.
func (s *ContactService) Get(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)
	contact, err := repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapContactError(err)
	}
	return contact, nil
}

// Create persists a new contact with the owner forced to ownerID.
func (s *ContactService) Create(ctx context.Context, ownerID, name, email, phone string, favorite bool) (*models.Contact, error) {
	contact := &models.Contact{
		OwnerID:  ownerID,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Favorite: favorite,
	}

	repo := s.repomanager.Contacts(s.db)
	created, err := repo.Create(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("error creating contact: %w", err)
	}
	return created, nil
}

// Update applies the provided fields to the owner's contact.
func (s *ContactService) Update(ctx context.Context, ownerID, id string, upd contacts.Update) (*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)
	contact, err := repo.Update(ctx, ownerID, id, upd)
	if err != nil {
		return nil, mapContactError(err)
	}
	return contact, nil
}

// Delete removes the owner's contact and returns the removed record.
func (s *ContactService) Delete(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)
	contact, err := repo.Delete(ctx, ownerID, id)
	if err != nil {
		return nil, mapContactError(err)
	}
	return contact, nil
}

// SetFavorite updates the favorite flag on the owner's contact. Setting the
// same value twice is a no-op the second time.
func (s *ContactService) SetFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)
	contact, err := repo.SetFavorite(ctx, ownerID, id, favorite)
	if err != nil {
		return nil, mapContactError(err)
	}
	return contact, nil
}

// mapContactError keeps "absent" and "owned by someone else"
// indistinguishable: both surface as ErrorNotFound.
func mapContactError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return common.ErrorInternal
}
