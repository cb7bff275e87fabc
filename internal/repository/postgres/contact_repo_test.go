package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/contacts/internal/domain"
	"github.com/vedran77/contacts/internal/repository"
)

var contactCols = []string{"id", "owner_id", "name", "email", "phone", "created_at", "updated_at"}

func testContact(owner uuid.UUID) *domain.Contact {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	return &domain.Contact{
		ID:        uuid.New(),
		OwnerID:   owner,
		Name:      "Bob",
		Email:     "bob@x.com",
		Phone:     "123",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestContactRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewContactRepo(mock)
	c := testContact(uuid.New())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contacts")).
		WithArgs(c.ID, c.OwnerID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), c))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_Create_MissingOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewContactRepo(mock)
	c := testContact(uuid.New())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contacts")).
		WithArgs(c.ID, c.OwnerID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "contacts_owner_id_fkey"})

	assert.ErrorIs(t, repo.Create(context.Background(), c), repository.ErrOwnerNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewContactRepo(mock)
	c := testContact(uuid.New())

	mock.ExpectQuery(regexp.QuoteMeta("FROM contacts WHERE id = $1")).
		WithArgs(c.ID).
		WillReturnRows(pgxmock.NewRows(contactCols).
			AddRow(c.ID, c.OwnerID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt))

	got, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	missing := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM contacts WHERE id = $1")).
		WithArgs(missing).
		WillReturnError(pgx.ErrNoRows)

	got, err = repo.GetByID(context.Background(), missing)
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_GetByID_StorageError(t *testing.T) {
	mock := newMock(t)
	repo := NewContactRepo(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM contacts WHERE id = $1")).
		WithArgs(id).
		WillReturnError(errors.New("timeout"))

	got, err := repo.GetByID(context.Background(), id)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestContactRepo_ListByOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewContactRepo(mock)
	owner := uuid.New()
	a, b := testContact(owner), testContact(owner)

	mock.ExpectQuery(regexp.QuoteMeta("FROM contacts WHERE owner_id = $1 ORDER BY created_at DESC")).
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows(contactCols).
			AddRow(a.ID, a.OwnerID, a.Name, a.Email, a.Phone, a.CreatedAt, a.UpdatedAt).
			AddRow(b.ID, b.OwnerID, b.Name, b.Email, b.Phone, b.CreatedAt, b.UpdatedAt))

	got, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_Update_OwnerGuard(t *testing.T) {
	mock := newMock(t)
	repo := NewContactRepo(mock)
	c := testContact(uuid.New())

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $5 AND owner_id = $6")).
		WithArgs(c.Name, c.Email, c.Phone, c.UpdatedAt, c.ID, c.OwnerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $5 AND owner_id = $6")).
		WithArgs(c.Name, c.Email, c.Phone, c.UpdatedAt, c.ID, c.OwnerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.Update(context.Background(), c))
	assert.ErrorIs(t, repo.Update(context.Background(), c), repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewContactRepo(mock)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contacts WHERE id = $1 AND owner_id = $2")).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id, owner), repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
