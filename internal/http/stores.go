package http

import "github.com/mrlokans/locallibrary/internal/entities"

// This file consolidates the store interfaces used by the catalog controllers.
// The repositories in internal/database implement them; the compile-time
// checks live in internal/interfaces.

type GenreStore interface {
	List() ([]entities.Genre, error)
	GetByID(id uint) (*entities.Genre, error)
	FindByName(name string) (*entities.Genre, error)
	Create(genre *entities.Genre) error
	Update(genre *entities.Genre) error
	Delete(id uint) error
	Count() (int64, error)
}

type AuthorStore interface {
	List() ([]entities.Author, error)
	GetByID(id uint) (*entities.Author, error)
	Create(author *entities.Author) error
	Update(author *entities.Author) error
	Delete(id uint) error
	Count() (int64, error)
}

type BookStore interface {
	List() ([]entities.Book, error)
	ListTitles() ([]entities.Book, error)
	GetByID(id uint) (*entities.Book, error)
	ListByAuthor(authorID uint) ([]entities.Book, error)
	ListByGenre(genreID uint) ([]entities.Book, error)
	Create(book *entities.Book) error
	Update(book *entities.Book) error
	Delete(id uint) error
	Count() (int64, error)
}

type BookInstanceStore interface {
	List() ([]entities.BookInstance, error)
	GetByID(id uint) (*entities.BookInstance, error)
	ListByBook(bookID uint) ([]entities.BookInstance, error)
	Create(instance *entities.BookInstance) error
	Update(instance *entities.BookInstance) error
	Delete(id uint) error
	Count() (int64, error)
	CountByStatus(status entities.BookInstanceStatus) (int64, error)
}

// Stores groups the catalog stores handed to NewRouter.
type Stores struct {
	Genres        GenreStore
	Authors       AuthorStore
	Books         BookStore
	BookInstances BookInstanceStore
}
