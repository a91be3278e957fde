// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Catalog stores
//
// Each controller in internal/http depends on the narrowest store it needs:
//
//   - GenreStore: genre CRUD and lookup by exact name (internal/http/stores.go)
//   - AuthorStore: author CRUD (internal/http/stores.go)
//   - BookStore: book CRUD plus dependents by author and genre (internal/http/stores.go)
//   - BookInstanceStore: copy CRUD, copies of a book and counts (internal/http/stores.go)
//
// The repositories under internal/database implement them.
//
// ## Health
//
//   - Pinger: connectivity check behind GET /health (internal/http/health.go)
//
// ## Background work
//
//   - OverdueLister: loaned copies past their due date (internal/tasks/overdue_loans.go)
//   - TaskAdder: task enqueueing used by the overdue scheduler (internal/scheduler/overdue.go)
//
// # Adding a New Document Type
//
//  1. Add the entity to internal/entities and to the AutoMigrate list in
//     internal/database/database.go
//  2. Create internal/database/<type>/repository.go
//  3. Declare the store interface in internal/http/stores.go and add a
//     controller and templates
//  4. Add a compile-time check to checks.go
package interfaces
