package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"database/sql"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/bookinstances"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/internal/scheduler"
	"github.com/mrlokans/locallibrary/internal/tasks"
)

// =============================================================================
// Catalog stores
// =============================================================================

var _ http.GenreStore = (*genres.Repository)(nil)
var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)
var _ http.BookInstanceStore = (*bookinstances.Repository)(nil)

// =============================================================================
// Health
// =============================================================================

var _ http.Pinger = (*database.Database)(nil)
var _ http.Pinger = (*sql.DB)(nil)

// =============================================================================
// Background work
// =============================================================================

var _ tasks.OverdueLister = (*bookinstances.Repository)(nil)
var _ scheduler.TaskAdder = (*tasks.Client)(nil)
