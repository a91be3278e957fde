// Package genres provides database operations for genre management.
//
// This package implements the GenreStore interface defined in internal/http/genres.go.
//
// # Usage
//
//	repo := genres.NewRepository(db)
//	genre, err := repo.FindByName("Fantasy")
package genres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every genre sorted by name.
func (r *Repository) List() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

// GetByID retrieves a genre by its ID.
func (r *Repository) GetByID(id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.First(&genre, id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindByName returns the genre with exactly this name, or nil when none exists.
func (r *Repository) FindByName(name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.Where("name = ?", name).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// Create inserts a genre. The entity's length constraint is checked here.
func (r *Repository) Create(genre *entities.Genre) error {
	return r.db.Create(genre).Error
}

// Update overwrites the stored genre with the given fields.
func (r *Repository) Update(genre *entities.Genre) error {
	result := r.db.Model(&entities.Genre{ID: genre.ID}).Updates(map[string]any{"name": genre.Name})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a genre.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Genre{}, id).Error
}

// Count returns the number of genres.
func (r *Repository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entities.Genre{}).Count(&n).Error
	return n, err
}
