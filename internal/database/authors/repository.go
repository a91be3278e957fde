// Package authors provides database operations for author management.
package authors

import (
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every author sorted by family name, then first name.
func (r *Repository) List() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("family_name ASC, first_name ASC").Find(&authors).Error
	return authors, err
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// Create inserts an author.
func (r *Repository) Create(author *entities.Author) error {
	return r.db.Create(author).Error
}

// Update overwrites every editable field of the stored author.
func (r *Repository) Update(author *entities.Author) error {
	result := r.db.Model(&entities.Author{ID: author.ID}).Updates(map[string]any{
		"first_name":    author.FirstName,
		"family_name":   author.FamilyName,
		"date_of_birth": author.DateOfBirth,
		"date_of_death": author.DateOfDeath,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an author.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Author{}, id).Error
}

// Count returns the number of authors.
func (r *Repository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entities.Author{}).Count(&n).Error
	return n, err
}
