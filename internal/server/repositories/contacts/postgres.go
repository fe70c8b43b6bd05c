// Package contacts provides the PostgreSQL-backed repository for
// ownership-scoped contact persistence.
package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

const contactColumns = `id, owner_id, name, email, phone, favorite, created_at`

// PostgresRepository implements contact storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanContact(row *sql.Row) (*models.Contact, error) {
	contact := &models.Contact{}
	err := row.Scan(&contact.ID, &contact.OwnerID, &contact.Name, &contact.Email,
		&contact.Phone, &contact.Favorite, &contact.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return contact, nil
}

func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {

	query :=
		`INSERT INTO contacts (owner_id, name, email, phone, favorite)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		contact.OwnerID, contact.Name, contact.Email, contact.Phone, contact.Favorite).
		Scan(&contact.ID, &contact.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

// List returns one page of the owner's contacts in creation order,
// optionally narrowed to a favorite state.
func (r *PostgresRepository) List(ctx context.Context, ownerID string, filter ListFilter) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1`

	args := []any{ownerID}
	if filter.Favorite != nil {
		args = append(args, *filter.Favorite)
		query += fmt.Sprintf(" AND favorite = $%d", len(args))
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
	}
	defer rows.Close()

	result := []*models.Contact{}
	for rows.Next() {
		var item models.Contact
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Name, &item.Email, &item.Phone,
			&item.Favorite, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND owner_id = $2`
	return scanContact(r.db.QueryRowContext(ctx, query, id, ownerID))
}

// Update applies the provided fields only; absent fields keep their stored
// values via COALESCE.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, upd Update) (*models.Contact, error) {
	query :=
		`UPDATE contacts
		 SET name = COALESCE($3, name),
		     email = COALESCE($4, email),
		     phone = COALESCE($5, phone)
		 WHERE id = $1 AND owner_id = $2
		 RETURNING ` + contactColumns

	return scanContact(r.db.QueryRowContext(ctx, query, id, ownerID, upd.Name, upd.Email, upd.Phone))
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	query := `DELETE FROM contacts WHERE id = $1 AND owner_id = $2 RETURNING ` + contactColumns
	return scanContact(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *PostgresRepository) SetFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error) {
	query := `UPDATE contacts SET favorite = $3 WHERE id = $1 AND owner_id = $2 RETURNING ` + contactColumns
	return scanContact(r.db.QueryRowContext(ctx, query, id, ownerID, favorite))
}
