package repository

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyColumns = []string{"id", "api_key", "created_at", "updated_at", "is_active"}

func setupKeys(t *testing.T) (*PostgresKeys, sqlmock.Sqlmock, time.Time) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	keys := NewPostgresKeys(sqlx.NewDb(db, "pgx"))
	keys.now = func() time.Time { return now }
	return keys, mock, now
}

func TestActiveKey_None(t *testing.T) {
	keys, mock, _ := setupKeys(t)

	mock.ExpectQuery(`FROM gemini_key\s+WHERE is_active = true ORDER BY updated_at DESC, id DESC LIMIT 1`).
		WillReturnError(sql.ErrNoRows)

	_, err := keys.ActiveKey(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_DeactivatesThenInserts(t *testing.T) {
	keys, mock, now := setupKeys(t)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1\)`).
		WithArgs(apiKeyLock).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE gemini_key SET is_active = false, updated_at = \$1 WHERE is_active = true`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO gemini_key`).
		WithArgs("K2", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	k, err := keys.Replace(context.Background(), "K2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), k.ID)
	assert.True(t, k.IsActive)
	assert.Equal(t, "K2", k.APIKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_InsertFailureRollsBack(t *testing.T) {
	keys, mock, _ := setupKeys(t)

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE gemini_key`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO gemini_key`).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := keys.Replace(context.Background(), "K2")
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertActive_InsertsWhenNoneActive(t *testing.T) {
	keys, mock, now := setupKeys(t)

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`LIMIT 1 FOR UPDATE`).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO gemini_key`).
		WithArgs("K1", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	k, err := keys.UpsertActive(context.Background(), "K1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), k.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertActive_UpdatesInPlace(t *testing.T) {
	keys, mock, now := setupKeys(t)
	earlier := now.Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`LIMIT 1 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(keyColumns).AddRow(5, "old", earlier, earlier, true))
	mock.ExpectExec(`UPDATE gemini_key SET api_key = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("K3", now, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`WHERE is_active = true AND id <> \$2`).
		WithArgs(now, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	k, err := keys.UpsertActive(context.Background(), "K3")
	require.NoError(t, err)
	assert.Equal(t, int64(5), k.ID)
	assert.Equal(t, "K3", k.APIKey)
	assert.Equal(t, earlier, k.CreatedAt)
	assert.Equal(t, now, k.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func activeCount(m *MemoryKeys) (int, string) {
	n, val := 0, ""
	for _, k := range m.All() {
		if k.IsActive {
			n++
			val = k.APIKey
		}
	}
	return n, val
}

func TestMemoryKeys_ReplaceLeavesOneActive(t *testing.T) {
	m := NewMemoryKeys()
	ctx := context.Background()

	_, err := m.ActiveKey(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Replace(ctx, "K1")
	require.NoError(t, err)
	_, err = m.Replace(ctx, "K2")
	require.NoError(t, err)

	n, val := activeCount(m)
	assert.Equal(t, 1, n)
	assert.Equal(t, "K2", val)
	assert.Len(t, m.All(), 2)

	k, err := m.ActiveKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "K2", k.APIKey)
}

func TestMemoryKeys_UpsertIsIdempotent(t *testing.T) {
	m := NewMemoryKeys()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := m.UpsertActive(ctx, "same")
		require.NoError(t, err)
	}
	n, val := activeCount(m)
	assert.Equal(t, 1, n)
	assert.Equal(t, "same", val)
	assert.Len(t, m.All(), 1)
}

func TestMemoryKeys_ConcurrentRotation(t *testing.T) {
	m := NewMemoryKeys()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = m.Replace(ctx, "r")
			} else {
				_, _ = m.UpsertActive(ctx, "u")
			}
		}(i)
	}
	wg.Wait()

	n, _ := activeCount(m)
	assert.Equal(t, 1, n)
}
