// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into one sub-package per document type:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── genres/          # Genre CRUD and name lookup
//	├── authors/         # Author CRUD
//	├── books/           # Book CRUD, author/genre population, dependents
//	└── bookinstances/   # Copy CRUD, book population, counts, overdue loans
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./locallibrary.db")
//
//	genresRepo := genres.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	genre, err := genresRepo.GetByID(3)
//	inGenre, err := booksRepo.ListByGenre(3)
//
// # Interface Implementations
//
// Each Repository implements the store interface its controller declares in
// internal/http. The compile-time checks live in internal/interfaces.
//
// # References
//
// Documents refer to each other by id only. Nothing cascades: callers check
// for dependents (books.Repository.ListByAuthor, ListByGenre and
// bookinstances.Repository.ListByBook) before deleting.
package database
