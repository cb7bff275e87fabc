package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vedran77/contacts/internal/domain"
	"github.com/vedran77/contacts/internal/repository"
)

const contactColumns = "id, owner_id, name, email, phone, created_at, updated_at"

type ContactRepo struct {
	db DBTX
}

func NewContactRepo(db DBTX) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	query := `
		INSERT INTO contacts (id, owner_id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		c.ID, c.OwnerID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt,
	)
	if isOwnerViolation(err) {
		return repository.ErrOwnerNotFound
	}
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	var c domain.Contact
	err := r.db.QueryRow(ctx, "SELECT "+contactColumns+" FROM contacts WHERE id = $1", id).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select contact: %w", err)
	}
	return &c, nil
}

func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Contact, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE owner_id = $1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	query := `UPDATE contacts SET name = $1, email = $2, phone = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6`

	tag, err := r.db.Exec(ctx, query, c.Name, c.Email, c.Phone, c.UpdatedAt, c.ID, c.OwnerID)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
