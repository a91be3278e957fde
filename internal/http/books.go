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
	bookListURL     = "/catalog/books"
	bookNotFoundMsg = "Book not found"
)

type BooksController struct {
	books     BookStore
	authors   AuthorStore
	genres    GenreStore
	instances BookInstanceStore
}

func NewBooksController(stores Stores) *BooksController {
	return &BooksController{
		books:     stores.Books,
		authors:   stores.Authors,
		genres:    stores.Genres,
		instances: stores.BookInstances,
	}
}

func (ctl *BooksController) List(c *gin.Context) error {
	books, err := ctl.books.List()
	if err != nil {
		return apperr.NewInternal(err)
	}
	render(c, http.StatusOK, "book_list", gin.H{
		"Title": "Book List",
		"Books": books,
	})
	return nil
}

// load fetches a book, with author and genres populated, and its copies
// concurrently.
func (ctl *BooksController) load(id uint) (*entities.Book, []entities.BookInstance, error) {
	var (
		book      *entities.Book
		instances []entities.BookInstance
		g         errgroup.Group
	)
	g.Go(func() (err error) {
		book, err = ctl.books.GetByID(id)
		return apperr.FromStore(err, bookNotFoundMsg)
	})
	g.Go(func() (err error) {
		instances, err = ctl.instances.ListByBook(id)
		return apperr.FromStore(err, bookNotFoundMsg)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return book, instances, nil
}

func (ctl *BooksController) Detail(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	book, instances, err := ctl.load(id)
	if err != nil {
		return err
	}
	render(c, http.StatusOK, "book_detail", gin.H{
		"Title":         book.Title,
		"Book":          book,
		"BookInstances": instances,
	})
	return nil
}

// choices fetches every author and genre concurrently for the book form.
func (ctl *BooksController) choices() ([]entities.Author, []entities.Genre, error) {
	var (
		authors []entities.Author
		genres  []entities.Genre
		g       errgroup.Group
	)
	g.Go(func() (err error) {
		authors, err = ctl.authors.List()
		return err
	})
	g.Go(func() (err error) {
		genres, err = ctl.genres.List()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, apperr.NewInternal(err)
	}
	return authors, genres, nil
}

func (ctl *BooksController) renderForm(c *gin.Context, title string, form forms.BookForm, authors []entities.Author, genres []entities.Genre, errs forms.Errors) {
	render(c, http.StatusOK, "book_form", gin.H{
		"Title":   title,
		"Form":    &form,
		"Authors": authors,
		"Genres":  genres,
		"Errors":  errs,
	})
}

func (ctl *BooksController) CreateForm(c *gin.Context) error {
	authors, genres, err := ctl.choices()
	if err != nil {
		return err
	}
	ctl.renderForm(c, "Create Book", forms.BookForm{}, authors, genres, nil)
	return nil
}

// Create validates the submission; on failure the form is shown again with
// the submitted genres still selected.
func (ctl *BooksController) Create(c *gin.Context) error {
	var form forms.BookForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	if errs := form.Clean(); len(errs) > 0 {
		authors, genres, err := ctl.choices()
		if err != nil {
			return err
		}
		ctl.renderForm(c, "Create Book", form, authors, genres, errs)
		return nil
	}

	book, err := form.Entity()
	if err != nil {
		return err
	}
	if err := ctl.books.Create(book); err != nil {
		return apperr.NewInternal(err)
	}
	sessions.AddFlash(c, "Book created.")
	return redirect(c, book.URL())
}

func (ctl *BooksController) DeleteForm(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	book, instances, err := ctl.load(id)
	if isNotFound(err) {
		return redirect(c, bookListURL)
	}
	if err != nil {
		return err
	}
	ctl.renderDelete(c, book, instances)
	return nil
}

func (ctl *BooksController) renderDelete(c *gin.Context, book *entities.Book, instances []entities.BookInstance) {
	render(c, http.StatusOK, "book_delete", gin.H{
		"Title":         "Delete Book",
		"Book":          book,
		"BookInstances": instances,
	})
}

// Delete removes the book only when it has no copies.
func (ctl *BooksController) Delete(c *gin.Context) error {
	id, err := targetID(c, "bookid")
	if err != nil {
		return err
	}
	book, instances, err := ctl.load(id)
	if isNotFound(err) {
		return redirect(c, bookListURL)
	}
	if err != nil {
		return err
	}
	if len(instances) > 0 {
		ctl.renderDelete(c, book, instances)
		return nil
	}
	if err := ctl.books.Delete(book.ID); err != nil {
		return apperr.NewInternal(err)
	}
	sessions.AddFlash(c, "Book deleted.")
	return redirect(c, bookListURL)
}

func (ctl *BooksController) UpdateForm(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var (
		book    *entities.Book
		authors []entities.Author
		genres  []entities.Genre
		g       errgroup.Group
	)
	g.Go(func() (err error) {
		book, err = ctl.books.GetByID(id)
		return apperr.FromStore(err, bookNotFoundMsg)
	})
	g.Go(func() (err error) {
		authors, err = ctl.authors.List()
		return apperr.FromStore(err, authorNotFoundMsg)
	})
	g.Go(func() (err error) {
		genres, err = ctl.genres.List()
		return apperr.FromStore(err, genreNotFoundMsg)
	})
	err = g.Wait()
	if isNotFound(err) {
		return redirect(c, bookListURL)
	}
	if err != nil {
		return err
	}

	ctl.renderForm(c, "Update Book", forms.BookFormFrom(book), authors, genres, nil)
	return nil
}

// Update overwrites the book and its genre references with the submitted
// fields. Reference ids that do not parse are malformed.
func (ctl *BooksController) Update(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var form forms.BookForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	book, err := form.Entity()
	if err != nil {
		return err
	}
	book.ID = id
	if err := ctl.books.Update(book); err != nil {
		return apperr.FromStore(err, bookNotFoundMsg)
	}
	sessions.AddFlash(c, "Book updated.")
	return redirect(c, book.URL())
}
