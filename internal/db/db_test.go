package db

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/taskhub/backend/internal/db/migrations"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, IsDuplicateEntry(&mysql.MySQLError{Number: DuplicateEntry}))
	assert.False(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicateEntry(errors.New("boom")))
	assert.False(t, IsDuplicateEntry(nil))
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestMigrate(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	called := false
	gooseUp = func(ctx context.Context, db *sqlx.DB) error {
		called = true
		return nil
	}
	require.NoError(t, Migrate(context.Background(), nil))
	assert.True(t, called)

	gooseUp = func(ctx context.Context, db *sqlx.DB) error {
		return errors.New("locked")
	}
	err := Migrate(context.Background(), nil)
	assert.ErrorContains(t, err, "goose up failed")
}
