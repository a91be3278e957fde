// Package bookinstances provides database operations for physical copies of books.
package bookinstances

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every copy with its book populated.
func (r *Repository) List() ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.Preload("Book").Order("id ASC").Find(&instances).Error
	return instances, err
}

// GetByID retrieves a copy with its book populated.
func (r *Repository) GetByID(id uint) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	if err := r.db.Preload("Book").First(&instance, id).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// ListByBook returns the copies of a book.
func (r *Repository) ListByBook(bookID uint) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.Where("book_id = ?", bookID).Order("id ASC").Find(&instances).Error
	return instances, err
}

// ListOverdue returns loaned copies whose due date is before now.
func (r *Repository) ListOverdue(now time.Time) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.db.Preload("Book").
		Where("status = ? AND due_back IS NOT NULL AND due_back < ?", entities.StatusLoaned, now).
		Order("due_back ASC").
		Find(&instances).Error
	return instances, err
}

// Create inserts a copy. Status defaulting and checking happen in the entity hook.
func (r *Repository) Create(instance *entities.BookInstance) error {
	return r.db.Omit("Book").Create(instance).Error
}

// Update overwrites every editable field of the stored copy.
func (r *Repository) Update(instance *entities.BookInstance) error {
	result := r.db.Model(&entities.BookInstance{ID: instance.ID}).Updates(map[string]any{
		"book_id":  instance.BookID,
		"imprint":  instance.Imprint,
		"status":   instance.Status,
		"due_back": instance.DueBack,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a copy.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.BookInstance{}, id).Error
}

// Count returns the number of copies.
func (r *Repository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entities.BookInstance{}).Count(&n).Error
	return n, err
}

// CountByStatus returns the number of copies with the given status.
func (r *Repository) CountByStatus(status entities.BookInstanceStatus) (int64, error) {
	var n int64
	err := r.db.Model(&entities.BookInstance{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
