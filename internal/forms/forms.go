// Package forms binds, sanitizes and validates catalog form submissions.
//
// Create submissions go through Clean, which trims, validates and escapes the
// fields in place and returns the messages to show. Update submissions skip
// Clean and are converted as submitted.
package forms

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/mrlokans/locallibrary/internal/apperr"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func parseID(field, value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, apperr.NewMalformed(field, err)
	}
	return uint(id), nil
}

func formatID(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

type GenreForm struct {
	Name string `form:"name" validate:"required,min=2"`
}

var genreMessages = map[string]string{
	"name": "Genre name required",
}

func GenreFormFrom(g *entities.Genre) GenreForm {
	return GenreForm{Name: g.Name}
}

func (f *GenreForm) Clean() Errors {
	f.Name = strings.TrimSpace(f.Name)
	errs := check(f, genreMessages)
	f.Name = Escape(f.Name)
	return errs
}

func (f *GenreForm) Entity() *entities.Genre {
	return &entities.Genre{Name: f.Name}
}

type AuthorForm struct {
	FirstName   string `form:"first_name" validate:"required,max=100,alphanum"`
	FamilyName  string `form:"family_name" validate:"required,max=100,alphanum"`
	DateOfBirth string `form:"date_of_birth" validate:"omitempty,isodate"`
	DateOfDeath string `form:"date_of_death" validate:"omitempty,isodate"`
}

var authorMessages = map[string]string{
	"first_name.required":  "First name must be specified.",
	"first_name.max":       "First name must be at most 100 characters.",
	"first_name.alphanum":  "First name has non-alphanumeric characters.",
	"family_name.required": "Family name must be specified.",
	"family_name.max":      "Family name must be at most 100 characters.",
	"family_name.alphanum": "Family name has non-alphanumeric characters.",
	"date_of_birth":        "Invalid date of birth",
	"date_of_death":        "Invalid date of death",
}

func AuthorFormFrom(a *entities.Author) AuthorForm {
	return AuthorForm{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: FormatDate(a.DateOfBirth),
		DateOfDeath: FormatDate(a.DateOfDeath),
	}
}

func (f *AuthorForm) Clean() Errors {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.FamilyName = strings.TrimSpace(f.FamilyName)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.DateOfDeath = strings.TrimSpace(f.DateOfDeath)
	errs := check(f, authorMessages)
	f.FirstName = Escape(f.FirstName)
	f.FamilyName = Escape(f.FamilyName)
	return errs
}

func (f *AuthorForm) Entity() (*entities.Author, error) {
	born, err := ParseOptionalDate(f.DateOfBirth)
	if err != nil {
		return nil, apperr.NewMalformed("date_of_birth", err)
	}
	died, err := ParseOptionalDate(f.DateOfDeath)
	if err != nil {
		return nil, apperr.NewMalformed("date_of_death", err)
	}
	return &entities.Author{
		FirstName:   f.FirstName,
		FamilyName:  f.FamilyName,
		DateOfBirth: born,
		DateOfDeath: died,
	}, nil
}

type BookForm struct {
	Title   string   `form:"title" validate:"required"`
	Author  string   `form:"author" validate:"required"`
	Summary string   `form:"summary" validate:"required"`
	ISBN    string   `form:"isbn" validate:"required"`
	Genre   []string `form:"genre"`
}

var bookMessages = map[string]string{
	"title":   "Title must not be empty.",
	"author":  "Author must not be empty.",
	"summary": "Summary must not be empty.",
	"isbn":    "ISBN must not be empty",
}

func BookFormFrom(b *entities.Book) BookForm {
	return BookForm{
		Title:   b.Title,
		Author:  formatID(b.AuthorID),
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Genre:   lo.Map(b.GenreIDs(), func(id uint, _ int) string { return formatID(id) }),
	}
}

func (f *BookForm) Clean() Errors {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Summary = strings.TrimSpace(f.Summary)
	f.ISBN = strings.TrimSpace(f.ISBN)
	errs := check(f, bookMessages)
	f.Title = Escape(f.Title)
	f.Author = Escape(f.Author)
	f.Summary = Escape(f.Summary)
	f.ISBN = Escape(f.ISBN)
	f.Genre = lo.Map(f.NormalizedGenres(), func(g string, _ int) string { return Escape(g) })
	return errs
}

// NormalizedGenres returns the submitted genre ids, never nil.
func (f *BookForm) NormalizedGenres() []string {
	if f.Genre == nil {
		return []string{}
	}
	return f.Genre
}

// HasGenre reports whether the genre with id was submitted or is currently
// assigned, for pre-selecting checkboxes.
func (f *BookForm) HasGenre(id uint) bool {
	return lo.Contains(f.Genre, formatID(id))
}

func (f *BookForm) HasAuthor(id uint) bool {
	return f.Author == formatID(id)
}

func (f *BookForm) Entity() (*entities.Book, error) {
	authorID, err := parseID("author", f.Author)
	if err != nil {
		return nil, err
	}
	genres := make([]entities.Genre, 0, len(f.Genre))
	for _, raw := range lo.Uniq(f.Genre) {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := parseID("genre", raw)
		if err != nil {
			return nil, err
		}
		genres = append(genres, entities.Genre{ID: id})
	}
	return &entities.Book{
		Title:    f.Title,
		AuthorID: authorID,
		Summary:  f.Summary,
		ISBN:     f.ISBN,
		Genres:   genres,
	}, nil
}

type BookInstanceForm struct {
	Book    string `form:"book" validate:"required"`
	Imprint string `form:"imprint" validate:"required"`
	Status  string `form:"status"`
	DueBack string `form:"due_back" validate:"omitempty,isodate"`
}

var bookInstanceMessages = map[string]string{
	"book":     "Book must be specified",
	"imprint":  "Imprint must be specified",
	"due_back": "Invalid date",
}

func BookInstanceFormFrom(bi *entities.BookInstance) BookInstanceForm {
	return BookInstanceForm{
		Book:    formatID(bi.BookID),
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: FormatDate(bi.DueBack),
	}
}

func (f *BookInstanceForm) Clean() Errors {
	f.Book = strings.TrimSpace(f.Book)
	f.Imprint = strings.TrimSpace(f.Imprint)
	f.DueBack = strings.TrimSpace(f.DueBack)
	errs := check(f, bookInstanceMessages)
	f.Book = Escape(f.Book)
	f.Imprint = Escape(f.Imprint)
	f.Status = Escape(f.Status)
	return errs
}

func (f *BookInstanceForm) HasBook(id uint) bool {
	return f.Book == formatID(id)
}

func (f *BookInstanceForm) HasStatus(status entities.BookInstanceStatus) bool {
	return f.Status == string(status)
}

func (f *BookInstanceForm) Entity() (*entities.BookInstance, error) {
	bookID, err := parseID("book", f.Book)
	if err != nil {
		return nil, err
	}
	dueBack, err := ParseOptionalDate(f.DueBack)
	if err != nil {
		return nil, apperr.NewMalformed("due_back", err)
	}
	return &entities.BookInstance{
		BookID:  bookID,
		Imprint: f.Imprint,
		Status:  entities.BookInstanceStatus(f.Status),
		DueBack: dueBack,
	}, nil
}
