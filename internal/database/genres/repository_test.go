package genres

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "genres.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Genre{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return NewRepository(db)
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := setupTestDB(t)

	genre := &entities.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(genre))
	assert.NotZero(t, genre.ID)

	got, err := repo.GetByID(genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", got.Name)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetByID(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Create_RejectsShortName(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Create(&entities.Genre{Name: "Sc"})
	assert.Error(t, err)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepository_FindByName(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.Create(&entities.Genre{Name: "Poetry"}))

	t.Run("existing name", func(t *testing.T) {
		genre, err := repo.FindByName("Poetry")
		require.NoError(t, err)
		require.NotNil(t, genre)
		assert.Equal(t, "Poetry", genre.Name)
	})

	t.Run("unknown name", func(t *testing.T) {
		genre, err := repo.FindByName("Drama")
		require.NoError(t, err)
		assert.Nil(t, genre)
	})
}

func TestRepository_List_SortedByName(t *testing.T) {
	repo := setupTestDB(t)
	for _, name := range []string{"Science Fiction", "Fantasy", "Poetry"} {
		require.NoError(t, repo.Create(&entities.Genre{Name: name}))
	}

	genres, err := repo.List()
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, "Fantasy", genres[0].Name)
	assert.Equal(t, "Poetry", genres[1].Name)
	assert.Equal(t, "Science Fiction", genres[2].Name)
}

func TestRepository_Update(t *testing.T) {
	repo := setupTestDB(t)
	genre := &entities.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(genre))

	t.Run("overwrites name without length check", func(t *testing.T) {
		require.NoError(t, repo.Update(&entities.Genre{ID: genre.ID, Name: "F"}))
		got, err := repo.GetByID(genre.ID)
		require.NoError(t, err)
		assert.Equal(t, "F", got.Name)
	})

	t.Run("missing genre", func(t *testing.T) {
		err := repo.Update(&entities.Genre{ID: 404, Name: "Nope"})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)
	genre := &entities.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(genre))

	require.NoError(t, repo.Delete(genre.ID))

	_, err := repo.GetByID(genre.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
