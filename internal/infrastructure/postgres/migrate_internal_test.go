package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/mygameon?sslmode=disable", migrateURL("postgres://u:p@db:5432/mygameon?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/x", migrateURL("postgresql://u@db/x"))
	assert.Equal(t, "pgx5://ya/convertida", migrateURL("pgx5://ya/convertida"))
}

func TestChunk(t *testing.T) {
	in := make([]int, 950)
	got := chunk(in, 400)
	if assert.Len(t, got, 3) {
		assert.Len(t, got[0], 400)
		assert.Len(t, got[1], 400)
		assert.Len(t, got[2], 150)
	}
	assert.Empty(t, chunk([]int{}, 400))
	assert.Len(t, chunk([]int{1, 2}, 400), 1)
}
