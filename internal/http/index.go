package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Summary holds the landing page counts. Err carries the first failed count;
// the page is rendered regardless.
type Summary struct {
	BookCount                  int64
	BookInstanceCount          int64
	BookInstanceAvailableCount int64
	AuthorCount                int64
	GenreCount                 int64
	Err                        error
}

type IndexController struct {
	stores Stores
}

func NewIndexController(stores Stores) *IndexController {
	return &IndexController{stores: stores}
}

// Summary runs the five counts concurrently.
func (ctl *IndexController) Summary() Summary {
	var s Summary
	var g errgroup.Group

	g.Go(func() error {
		n, err := ctl.stores.Books.Count()
		s.BookCount = n
		return err
	})
	g.Go(func() error {
		n, err := ctl.stores.BookInstances.Count()
		s.BookInstanceCount = n
		return err
	})
	g.Go(func() error {
		n, err := ctl.stores.BookInstances.CountByStatus(entities.StatusAvailable)
		s.BookInstanceAvailableCount = n
		return err
	})
	g.Go(func() error {
		n, err := ctl.stores.Authors.Count()
		s.AuthorCount = n
		return err
	})
	g.Go(func() error {
		n, err := ctl.stores.Genres.Count()
		s.GenreCount = n
		return err
	})

	s.Err = g.Wait()
	return s
}

func (ctl *IndexController) Index(c *gin.Context) error {
	summary := ctl.Summary()
	if summary.Err != nil {
		requestLogger(c).Error().Err(summary.Err).Msg("landing page count failed")
	}
	render(c, http.StatusOK, "index", gin.H{
		"Title":   "Local Library Home",
		"Summary": summary,
	})
	return nil
}
