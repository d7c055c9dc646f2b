package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesDirectoryAndMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cars.db")

	db, err := New(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "schema creation must be repeatable")

	for _, table := range []string{"users", "cars", "expenses"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestIsUniqueViolation(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "cars.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(db))

	insert := "INSERT INTO users (username, email, hashed_password) VALUES (?, ?, 'x')"
	_, err = db.Exec(insert, "alice", "a@x.com")
	require.NoError(t, err)

	_, err = db.Exec(insert, "alice", "other@x.com")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), "duplicate username: %v", err)

	_, err = db.Exec(insert, "bob", "a@x.com")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), "duplicate email: %v", err)

	// A foreign key failure is a constraint error but not a uniqueness one.
	_, err = db.Exec("INSERT INTO cars (user_id, make, model) VALUES (999, 'Toyota', 'Yaris')")
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(errors.New("UNIQUE constraint failed")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "cars.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(db))

	_, err = db.Exec("INSERT INTO cars (user_id, make, model) VALUES (999, 'Toyota', 'Yaris')")
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err), "unknown owner: %v", err)

	insert := "INSERT INTO users (username, email, hashed_password) VALUES (?, ?, 'x')"
	_, err = db.Exec(insert, "alice", "a@x.com")
	require.NoError(t, err)
	_, err = db.Exec(insert, "alice", "b@x.com")
	require.Error(t, err)
	assert.False(t, IsForeignKeyViolation(err))

	assert.False(t, IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsForeignKeyViolation(nil))
}
