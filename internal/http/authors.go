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
	authorListURL     = "/catalog/authors"
	authorNotFoundMsg = "Author not found"
)

type AuthorsController struct {
	authors AuthorStore
	books   BookStore
}

func NewAuthorsController(authors AuthorStore, books BookStore) *AuthorsController {
	return &AuthorsController{authors: authors, books: books}
}

func (ctl *AuthorsController) List(c *gin.Context) error {
	authors, err := ctl.authors.List()
	if err != nil {
		return apperr.NewInternal(err)
	}
	render(c, http.StatusOK, "author_list", gin.H{
		"Title":   "Author List",
		"Authors": authors,
	})
	return nil
}

// load fetches an author and their books concurrently.
func (ctl *AuthorsController) load(id uint) (*entities.Author, []entities.Book, error) {
	var (
		author *entities.Author
		books  []entities.Book
		g      errgroup.Group
	)
	g.Go(func() (err error) {
		author, err = ctl.authors.GetByID(id)
		return apperr.FromStore(err, authorNotFoundMsg)
	})
	g.Go(func() (err error) {
		books, err = ctl.books.ListByAuthor(id)
		return apperr.FromStore(err, authorNotFoundMsg)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return author, books, nil
}

func (ctl *AuthorsController) Detail(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	author, books, err := ctl.load(id)
	if err != nil {
		return err
	}
	render(c, http.StatusOK, "author_detail", gin.H{
		"Title":  "Author Detail",
		"Author": author,
		"Books":  books,
	})
	return nil
}

func (ctl *AuthorsController) renderForm(c *gin.Context, title string, form forms.AuthorForm, errs forms.Errors) {
	render(c, http.StatusOK, "author_form", gin.H{
		"Title":  title,
		"Form":   form,
		"Errors": errs,
	})
}

func (ctl *AuthorsController) CreateForm(c *gin.Context) error {
	ctl.renderForm(c, "Create Author", forms.AuthorForm{}, nil)
	return nil
}

func (ctl *AuthorsController) Create(c *gin.Context) error {
	var form forms.AuthorForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	if errs := form.Clean(); len(errs) > 0 {
		ctl.renderForm(c, "Create Author", form, errs)
		return nil
	}
	author, err := form.Entity()
	if err != nil {
		return err
	}
	if err := ctl.authors.Create(author); err != nil {
		return apperr.NewInternal(err)
	}
	sessions.AddFlash(c, "Author created.")
	return redirect(c, author.URL())
}

func (ctl *AuthorsController) DeleteForm(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	author, books, err := ctl.load(id)
	if isNotFound(err) {
		return redirect(c, authorListURL)
	}
	if err != nil {
		return err
	}
	ctl.renderDelete(c, author, books)
	return nil
}

func (ctl *AuthorsController) renderDelete(c *gin.Context, author *entities.Author, books []entities.Book) {
	render(c, http.StatusOK, "author_delete", gin.H{
		"Title":  "Delete Author",
		"Author": author,
		"Books":  books,
	})
}

// Delete removes the author only when no book references them.
func (ctl *AuthorsController) Delete(c *gin.Context) error {
	id, err := targetID(c, "authorid")
	if err != nil {
		return err
	}
	author, books, err := ctl.load(id)
	if isNotFound(err) {
		return redirect(c, authorListURL)
	}
	if err != nil {
		return err
	}
	if len(books) > 0 {
		ctl.renderDelete(c, author, books)
		return nil
	}
	if err := ctl.authors.Delete(author.ID); err != nil {
		return apperr.NewInternal(err)
	}
	sessions.AddFlash(c, "Author deleted.")
	return redirect(c, authorListURL)
}

func (ctl *AuthorsController) UpdateForm(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	author, err := ctl.authors.GetByID(id)
	if err = apperr.FromStore(err, authorNotFoundMsg); isNotFound(err) {
		return redirect(c, authorListURL)
	}
	if err != nil {
		return err
	}
	ctl.renderForm(c, "Update Author", forms.AuthorFormFrom(author), nil)
	return nil
}

// Update overwrites the author with the submitted fields. Dates that do not
// parse are malformed values.
func (ctl *AuthorsController) Update(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var form forms.AuthorForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	author, err := form.Entity()
	if err != nil {
		return err
	}
	author.ID = id
	if err := ctl.authors.Update(author); err != nil {
		return apperr.FromStore(err, authorNotFoundMsg)
	}
	sessions.AddFlash(c, "Author updated.")
	return redirect(c, author.URL())
}
