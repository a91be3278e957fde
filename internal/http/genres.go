package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/apperr"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/forms"
	"github.com/mrlokans/locallibrary/internal/sessions"
)

const (
	genreListURL     = "/catalog/genres"
	genreNotFoundMsg = "Genre not found"
)

type GenresController struct {
	genres GenreStore
	books  BookStore
}

func NewGenresController(genres GenreStore, books BookStore) *GenresController {
	return &GenresController{genres: genres, books: books}
}

func (ctl *GenresController) List(c *gin.Context) error {
	genres, err := ctl.genres.List()
	if err != nil {
		return apperr.NewInternal(err)
	}
	render(c, http.StatusOK, "genre_list", gin.H{
		"Title":  "Genre List",
		"Genres": genres,
	})
	return nil
}

// load fetches a genre and the books in it concurrently.
func (ctl *GenresController) load(id uint) (*entities.Genre, []entities.Book, error) {
	var (
		genre *entities.Genre
		books []entities.Book
		g     errgroup.Group
	)
	g.Go(func() (err error) {
		genre, err = ctl.genres.GetByID(id)
		return apperr.FromStore(err, genreNotFoundMsg)
	})
	g.Go(func() (err error) {
		books, err = ctl.books.ListByGenre(id)
		return apperr.FromStore(err, genreNotFoundMsg)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}

func (ctl *GenresController) Detail(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	genre, books, err := ctl.load(id)
	if err != nil {
		return err
	}
	render(c, http.StatusOK, "genre_detail", gin.H{
		"Title": "Genre Detail",
		"Genre": genre,
		"Books": books,
	})
	return nil
}

func (ctl *GenresController) renderForm(c *gin.Context, title string, form forms.GenreForm, errs forms.Errors) {
	render(c, http.StatusOK, "genre_form", gin.H{
		"Title":  title,
		"Form":   form,
		"Errors": errs,
	})
}

func (ctl *GenresController) CreateForm(c *gin.Context) error {
	ctl.renderForm(c, "Create Genre", forms.GenreForm{}, nil)
	return nil
}

// Create inserts a genre unless one with the same name exists, in which case
// it redirects there. The lookup and insert are not atomic.
func (ctl *GenresController) Create(c *gin.Context) error {
	var form forms.GenreForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	if errs := form.Clean(); len(errs) > 0 {
		ctl.renderForm(c, "Create Genre", form, errs)
		return nil
	}

	existing, err := ctl.genres.FindByName(form.Name)
	if err != nil {
		return apperr.NewInternal(err)
	}
	if existing != nil {
		return redirect(c, existing.URL())
	}

	genre := form.Entity()
	if err := ctl.genres.Create(genre); err != nil {
		if errs, ok := constraintErrors(err); ok {
			ctl.renderForm(c, "Create Genre", form, errs)
			return nil
		}
		return apperr.NewInternal(err)
	}
	sessions.AddFlash(c, "Genre created.")
	return redirect(c, genre.URL())
}

func (ctl *GenresController) DeleteForm(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	genre, books, err := ctl.load(id)
	if isNotFound(err) {
		return redirect(c, genreListURL)
	}
	if err != nil {
		return err
	}
	ctl.renderDelete(c, genre, books)
	return nil
}

func (ctl *GenresController) renderDelete(c *gin.Context, genre *entities.Genre, books []entities.Book) {
	render(c, http.StatusOK, "genre_delete", gin.H{
		"Title": "Delete Genre",
		"Genre": genre,
		"Books": books,
	})
}

// Delete removes the genre only when no book references it; otherwise the
// confirmation page is shown again with the referencing books.
func (ctl *GenresController) Delete(c *gin.Context) error {
	id, err := targetID(c, "genreid")
	if err != nil {
		return err
	}
	genre, books, err := ctl.load(id)
	if isNotFound(err) {
		return redirect(c, genreListURL)
	}
	if err != nil {
		return err
	}
	if len(books) > 0 {
		ctl.renderDelete(c, genre, books)
		return nil
	}
	if err := ctl.genres.Delete(genre.ID); err != nil {
		return apperr.NewInternal(err)
	}
	sessions.AddFlash(c, "Genre deleted.")
	return redirect(c, genreListURL)
}

func (ctl *GenresController) UpdateForm(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	genre, err := ctl.genres.GetByID(id)
	if err = apperr.FromStore(err, genreNotFoundMsg); isNotFound(err) {
		return redirect(c, genreListURL)
	}
	if err != nil {
		return err
	}
	ctl.renderForm(c, "Update Genre", forms.GenreFormFrom(genre), nil)
	return nil
}

// Update overwrites the genre with the submitted fields as-is.
func (ctl *GenresController) Update(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var form forms.GenreForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	genre := form.Entity()
	genre.ID = id
	if err := ctl.genres.Update(genre); err != nil {
		return apperr.FromStore(err, genreNotFoundMsg)
	}
	sessions.AddFlash(c, "Genre updated.")
	return redirect(c, genre.URL())
}
