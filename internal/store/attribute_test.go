package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagListScopesToOwner(t *testing.T) {
	gdb, mock := setupMockDB(t)
	tags := NewGormTagStore(gdb)

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(2, "Vegan").
		AddRow(1, "Dessert")

	mock.ExpectQuery(`SELECT DISTINCT (.+) FROM "tags" WHERE tags.owner_id =`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	attrs, err := tags.List(context.Background(), 7, false)
	require.NoError(t, err)
	assert.Equal(t, []Attribute{{ID: 2, Name: "Vegan"}, {ID: 1, Name: "Dessert"}}, attrs)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagListAssignedOnlyAddsExistsCheck(t *testing.T) {
	gdb, mock := setupMockDB(t)
	tags := NewGormTagStore(gdb)

	mock.ExpectQuery(`FROM "tags" WHERE tags.owner_id = (.+) AND (.*)EXISTS \(SELECT 1 FROM recipe_tags`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := tags.List(context.Background(), 7, true)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngredientListUsesOwnJoinTable(t *testing.T) {
	gdb, mock := setupMockDB(t)
	ingredients := NewGormIngredientStore(gdb)

	mock.ExpectQuery(`FROM "ingredients" WHERE ingredients.owner_id = (.+)EXISTS \(SELECT 1 FROM recipe_ingredients`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := ingredients.List(context.Background(), 4, true)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagGetOrCreateReturnsExisting(t *testing.T) {
	gdb, mock := setupMockDB(t)
	tags := NewGormTagStore(gdb)

	rows := sqlmock.NewRows([]string{"id", "name", "owner_id"}).AddRow(5, "Vegan", 7)

	mock.ExpectQuery(`SELECT (.+) FROM "tags" WHERE owner_id = (.+) AND name =`).
		WillReturnRows(rows)

	attr, created, err := tags.GetOrCreate(context.Background(), 7, "Vegan")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, Attribute{ID: 5, Name: "Vegan"}, attr)

	// no insert for an existing (owner, name) pair
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagGetOrCreateInsertsWhenAbsent(t *testing.T) {
	gdb, mock := setupMockDB(t)
	tags := NewGormTagStore(gdb)

	mock.ExpectQuery(`SELECT (.+) FROM "tags" WHERE owner_id = (.+) AND name =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectCommit()

	attr, created, err := tags.GetOrCreate(context.Background(), 7, "Brunch")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, Attribute{ID: 6, Name: "Brunch"}, attr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagUpdateNotOwned(t *testing.T) {
	gdb, mock := setupMockDB(t)
	tags := NewGormTagStore(gdb)

	mock.ExpectQuery(`SELECT (.+) FROM "tags" WHERE id = (.+) AND owner_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := tags.Update(context.Background(), 7, 42, "Renamed")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagDeleteNotOwned(t *testing.T) {
	gdb, mock := setupMockDB(t)
	tags := NewGormTagStore(gdb)

	mock.ExpectQuery(`SELECT (.+) FROM "tags" WHERE id = (.+) AND owner_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := tags.Delete(context.Background(), 7, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
