package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	subtree, err := Migrations()
	require.NoError(t, err)

	names, err := fs.Glob(subtree, "*.sql")
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, "001_create_films_schema.sql", names[0])
	assert.Equal(t, "002_create_users.sql", names[1])

	for _, name := range names {
		body, err := fs.ReadFile(subtree, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "---- create above / drop below ----", name)
	}
}

func TestFilmsActorsCascade(t *testing.T) {
	body, err := fs.ReadFile(migrations, "migrations/001_create_films_schema.sql")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(string(body), "ON DELETE CASCADE"))
}
