// Package books provides database operations for book management.
//
// This package implements the BookStore interface defined in internal/http/books.go.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123) // author and genres populated
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every book with its author populated, sorted by title.
func (r *Repository) List() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Order("title ASC").Find(&books).Error
	return books, err
}

// ListTitles returns every book with only id and title loaded.
func (r *Repository) ListTitles() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Select("id", "title").Order("title ASC").Find(&books).Error
	return books, err
}

// GetByID retrieves a book with its author and genres populated.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListByAuthor returns the books referencing an author.
func (r *Repository) ListByAuthor(authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("author_id = ?", authorID).Order("title ASC").Find(&books).Error
	return books, err
}

// ListByGenre returns the books referencing a genre.
func (r *Repository) ListByGenre(genreID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Order("books.title ASC").
		Find(&books).Error
	return books, err
}

// Create inserts a book and its genre references. Only ids are taken from
// book.Author and book.Genres; referenced documents are never written.
func (r *Repository) Create(book *entities.Book) error {
	genreIDs := book.GenreIDs()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Genres").Create(book).Error; err != nil {
			return err
		}
		return insertGenreRefs(tx, book.ID, genreIDs)
	})
}

// Update overwrites the stored book's fields and genre references.
func (r *Repository) Update(book *entities.Book) error {
	genreIDs := book.GenreIDs()
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Book{ID: book.ID}).Updates(map[string]any{
			"title":     book.Title,
			"author_id": book.AuthorID,
			"summary":   book.Summary,
			"isbn":      book.ISBN,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", book.ID).Error; err != nil {
			return err
		}
		return insertGenreRefs(tx, book.ID, genreIDs)
	})
}

// Delete removes a book and its genre references.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}

// Count returns the number of books.
func (r *Repository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entities.Book{}).Count(&n).Error
	return n, err
}

func insertGenreRefs(tx *gorm.DB, bookID uint, genreIDs []uint) error {
	seen := make(map[uint]bool, len(genreIDs))
	for _, genreID := range genreIDs {
		if seen[genreID] {
			continue
		}
		seen[genreID] = true
		if err := tx.Exec("INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?)", bookID, genreID).Error; err != nil {
			return err
		}
	}
	return nil
}
