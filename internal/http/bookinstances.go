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
	bookInstanceListURL     = "/catalog/bookinstances"
	bookInstanceNotFoundMsg = "Book copy not found"
)

type BookInstancesController struct {
	instances BookInstanceStore
	books     BookStore
}

func NewBookInstancesController(instances BookInstanceStore, books BookStore) *BookInstancesController {
	return &BookInstancesController{instances: instances, books: books}
}

func (ctl *BookInstancesController) List(c *gin.Context) error {
	instances, err := ctl.instances.List()
	if err != nil {
		return apperr.NewInternal(err)
	}
	render(c, http.StatusOK, "bookinstance_list", gin.H{
		"Title":         "Book Instance List",
		"BookInstances": instances,
	})
	return nil
}

func (ctl *BookInstancesController) get(id uint) (*entities.BookInstance, error) {
	instance, err := ctl.instances.GetByID(id)
	if err != nil {
		return nil, apperr.FromStore(err, bookInstanceNotFoundMsg)
	}
	return instance, nil
}

func (ctl *BookInstancesController) Detail(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	instance, err := ctl.get(id)
	if err != nil {
		return err
	}
	render(c, http.StatusOK, "bookinstance_detail", gin.H{
		"Title":        "Book: " + instance.Book.Title,
		"BookInstance": instance,
	})
	return nil
}

func (ctl *BookInstancesController) renderForm(c *gin.Context, title string, form forms.BookInstanceForm, books []entities.Book, errs forms.Errors) {
	render(c, http.StatusOK, "bookinstance_form", gin.H{
		"Title":    title,
		"Form":     &form,
		"Books":    books,
		"Statuses": entities.BookInstanceStatuses,
		"Errors":   errs,
	})
}

func (ctl *BookInstancesController) CreateForm(c *gin.Context) error {
	books, err := ctl.books.ListTitles()
	if err != nil {
		return apperr.NewInternal(err)
	}
	ctl.renderForm(c, "Create BookInstance", forms.BookInstanceForm{}, books, nil)
	return nil
}

// Create validates the submission. An unknown status passes the form rules
// and is rejected by the entity on insert.
func (ctl *BookInstancesController) Create(c *gin.Context) error {
	var form forms.BookInstanceForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	errs := form.Clean()

	var instance *entities.BookInstance
	if len(errs) == 0 {
		var err error
		if instance, err = form.Entity(); err != nil {
			return err
		}
		err = ctl.instances.Create(instance)
		if err == nil {
			sessions.AddFlash(c, "Book copy created.")
			return redirect(c, instance.URL())
		}
		var ok bool
		if errs, ok = constraintErrors(err); !ok {
			return apperr.NewInternal(err)
		}
	}

	books, err := ctl.books.ListTitles()
	if err != nil {
		return apperr.NewInternal(err)
	}
	ctl.renderForm(c, "Create BookInstance", form, books, errs)
	return nil
}

func (ctl *BookInstancesController) DeleteForm(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	instance, err := ctl.get(id)
	if isNotFound(err) {
		return redirect(c, bookInstanceListURL)
	}
	if err != nil {
		return err
	}
	render(c, http.StatusOK, "bookinstance_delete", gin.H{
		"Title":        "Delete BookInstance",
		"BookInstance": instance,
	})
	return nil
}

// Delete removes the copy. Nothing references copies, so it never refuses.
func (ctl *BookInstancesController) Delete(c *gin.Context) error {
	id, err := targetID(c, "bookinstanceid")
	if err != nil {
		return err
	}
	instance, err := ctl.get(id)
	if isNotFound(err) {
		return redirect(c, bookInstanceListURL)
	}
	if err != nil {
		return err
	}
	if err := ctl.instances.Delete(instance.ID); err != nil {
		return apperr.NewInternal(err)
	}
	sessions.AddFlash(c, "Book copy deleted.")
	return redirect(c, bookInstanceListURL)
}

func (ctl *BookInstancesController) UpdateForm(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var (
		instance *entities.BookInstance
		books    []entities.Book
		g        errgroup.Group
	)
	g.Go(func() (err error) {
		instance, err = ctl.get(id)
		return err
	})
	g.Go(func() (err error) {
		books, err = ctl.books.ListTitles()
		return err
	})
	err = g.Wait()
	if isNotFound(err) {
		return redirect(c, bookInstanceListURL)
	}
	if err != nil {
		return apperr.FromStore(err, bookInstanceNotFoundMsg)
	}

	ctl.renderForm(c, "Update BookInstance", forms.BookInstanceFormFrom(instance), books, nil)
	return nil
}

// Update overwrites the copy with the submitted fields. The status is stored
// as submitted; only the book id and due date must be coercible.
func (ctl *BookInstancesController) Update(c *gin.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var form forms.BookInstanceForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	instance, err := form.Entity()
	if err != nil {
		return err
	}
	instance.ID = id
	if err := ctl.instances.Update(instance); err != nil {
		return apperr.FromStore(err, bookInstanceNotFoundMsg)
	}
	sessions.AddFlash(c, "Book copy updated.")
	return redirect(c, instance.URL())
}
