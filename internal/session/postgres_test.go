package session

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/simple-lms-api/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresPersister(t *testing.T) (*PostgresPersister, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewPostgresPersister(&database.DB{DB: conn}, "lms:session"), mock
}

func TestPostgresPersister_Load(t *testing.T) {
	ctx := context.Background()
	p, mock := newPostgresPersister(t)

	mock.ExpectQuery("SELECT payload FROM sessions WHERE key").
		WithArgs("lms:session").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`{"id":"user-1"}`)))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"user-1"}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPersister_LoadMissing(t *testing.T) {
	ctx := context.Background()
	p, mock := newPostgresPersister(t)

	mock.ExpectQuery("SELECT payload FROM sessions WHERE key").
		WithArgs("lms:session").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err := p.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPersister_LoadError(t *testing.T) {
	ctx := context.Background()
	p, mock := newPostgresPersister(t)

	mock.ExpectQuery("SELECT payload FROM sessions WHERE key").
		WillReturnError(errors.New("connection reset"))

	_, err := p.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestPostgresPersister_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	p, mock := newPostgresPersister(t)

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs("lms:session", `{"id":"user-1"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM sessions WHERE key").
		WithArgs("lms:session").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, p.Save(ctx, []byte(`{"id":"user-1"}`)))
	require.NoError(t, p.Clear(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPersister_SaveError(t *testing.T) {
	ctx := context.Background()
	p, mock := newPostgresPersister(t)

	mock.ExpectExec("INSERT INTO sessions").WillReturnError(errors.New("read-only transaction"))

	assert.Error(t, p.Save(ctx, []byte(`{}`)))
}
