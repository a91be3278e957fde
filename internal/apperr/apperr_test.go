package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromStore(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, FromStore(nil, "Genre not found"))
	})

	t.Run("record not found", func(t *testing.T) {
		err := FromStore(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), "Genre not found")
		assert.Equal(t, NotFound, KindOf(err))
		assert.Equal(t, "Genre not found", Message(err))
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("other errors are internal", func(t *testing.T) {
		err := FromStore(errors.New("disk I/O error"), "Genre not found")
		assert.Equal(t, Internal, KindOf(err))
		assert.Equal(t, "Internal Server Error", Message(err))
	})

	t.Run("classified errors pass through", func(t *testing.T) {
		malformed := NewMalformed("id", errors.New("bad"))
		assert.Equal(t, Malformed, KindOf(FromStore(malformed, "x")))
	})
}

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound.Status())
	assert.Equal(t, http.StatusInternalServerError, Malformed.Status())
	assert.Equal(t, http.StatusInternalServerError, Internal.Status())
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
}

func TestError_Message(t *testing.T) {
	err := NewMalformed("author", errors.New("strconv.ParseUint: parsing \"abc\": invalid syntax"))
	assert.Contains(t, err.Error(), "malformed author")
	assert.Equal(t, "Book not found", NewNotFound("Book not found").Error())
}
