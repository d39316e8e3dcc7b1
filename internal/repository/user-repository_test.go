package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/courseforge/courseforge/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gdb, mock
}

func TestFindUserByEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	rows := sqlmock.NewRows([]string{"id", "email", "name", "is_verified"}).
		AddRow(1, "somchai@example.com", "Somchai", true)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("somchai@example.com", 1).
		WillReturnRows(rows)

	user, err := repo.FindUserByEmail("somchai@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "Somchai", user.Name)
	assert.True(t, user.IsVerified)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmailNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmailStorageFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.FindUserByEmail("somchai@example.com")
	assert.ErrorIs(t, err, apperr.ErrStorage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByIDNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindUserByID(999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserNil(t *testing.T) {
	gdb, _ := newMockDB(t)
	repo := NewUserRepository(gdb)

	_, err := repo.CreateUser(nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSaveUserNil(t *testing.T) {
	gdb, _ := newMockDB(t)
	repo := NewUserRepository(gdb)

	assert.ErrorIs(t, repo.SaveUser(nil), apperr.ErrValidation)
}
