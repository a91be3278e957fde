package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/mrlokans/locallibrary/internal/apperr"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/forms"
	"github.com/mrlokans/locallibrary/internal/logger"
	"github.com/mrlokans/locallibrary/internal/middleware"
	"github.com/mrlokans/locallibrary/internal/sessions"
)

// handlerFunc is a catalog handler. A returned error is classified and
// rendered by handle; validation failures are rendered by the handler itself.
type handlerFunc func(c *gin.Context) error

// handle adapts a handlerFunc to gin, responding once for any returned error.
func handle(h handlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {
			respondError(c, err)
		}
	}
}

// respondError maps the error kind to a status and renders the error page.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := kind.Status()

	l := requestLogger(c)
	event := l.Warn()
	if status >= http.StatusInternalServerError {
		event = l.Error()
	}
	event.Err(err).
		Str("kind", kind.String()).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	_ = c.Error(err)

	render(c, status, "error", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": apperr.Message(err),
	})
}

// render injects the per-request template values and renders name.
func render(c *gin.Context, status int, name string, data gin.H) {
	data["CSRFToken"] = middleware.GetCSRFToken(c)
	data["CSRFField"] = middleware.CSRFFieldName
	data["Flash"] = sessions.PopFlash(c)
	c.HTML(status, name, data)
}

func redirect(c *gin.Context, location string) error {
	c.Redirect(http.StatusFound, location)
	return nil
}

func requestLogger(c *gin.Context) *zerolog.Logger {
	l := zerolog.Ctx(c.Request.Context())
	if l.GetLevel() == zerolog.Disabled {
		return logger.Get()
	}
	return l
}

// parseIDParam extracts the document id from the path. An id that is not an
// unsigned integer is a malformed reference.
func parseIDParam(c *gin.Context) (uint, error) {
	return parseID("id", c.Param("id"))
}

// targetID reads the id of the document to delete from the body field,
// falling back to the path id.
func targetID(c *gin.Context, field string) (uint, error) {
	if raw := strings.TrimSpace(c.PostForm(field)); raw != "" {
		return parseID(field, raw)
	}
	return parseIDParam(c)
}

func parseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.NewMalformed(field, err)
	}
	return uint(id), nil
}

func bindForm(c *gin.Context, form any) error {
	if err := c.ShouldBindWith(form, binding.Form); err != nil {
		return apperr.NewMalformed("form", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return apperr.KindOf(err) == apperr.NotFound
}

// constraintErrors turns an entity constraint violation raised on insert
// into form messages. ok is false for any other error.
func constraintErrors(err error) (forms.Errors, bool) {
	var verr *entities.ValidationError
	if !errors.As(err, &verr) {
		return nil, false
	}
	return forms.Errors{{Field: verr.Field, Message: verr.Message}}, true
}
