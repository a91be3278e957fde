package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/apperr"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "Tom &amp; Jerry", Escape("Tom & Jerry"))
	assert.Equal(t, "&lt;b&gt;&quot;hi&quot;&lt;&#x2F;b&gt;", Escape(`<b>"hi"</b>`))
	assert.Equal(t, "O&#x27;Brien &#x5C; &#96;x&#96;", Escape("O'Brien \\ `x`"))
	assert.Equal(t, "Fantasy", Escape("Fantasy"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2024-02-29", true},
		{"2024-10-01T12:30:00Z", true},
		{"2024-10-01T12:30:00", true},
		{"2024-13-40", false},
		{"2023-02-29", false},
		{"yesterday", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			assert.Equal(t, tt.valid, err == nil)
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("   ")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2026-10-19")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2026-10-19", FormatDate(d))
}

func TestGenreForm_Clean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantName string
	}{
		{"valid", "  Fantasy ", false, "Fantasy"},
		{"two characters pass", "Sc", false, "Sc"},
		{"one character", "S", true, "S"},
		{"blank", "   ", true, ""},
		{"escaped", "Sci/Fi", false, "Sci&#x2F;Fi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GenreForm{Name: tt.input}
			errs := f.Clean()
			if tt.wantErr {
				require.Len(t, errs, 1)
				assert.Equal(t, "Genre name required", errs[0].Message)
			} else {
				assert.Empty(t, errs)
			}
			assert.Equal(t, tt.wantName, f.Name)
		})
	}
}

func TestAuthorForm_Clean(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := AuthorForm{FirstName: " Isaac ", FamilyName: "Asimov", DateOfBirth: "1920-01-02"}
		assert.Empty(t, f.Clean())

		author, err := f.Entity()
		require.NoError(t, err)
		assert.Equal(t, "Isaac", author.FirstName)
		require.NotNil(t, author.DateOfBirth)
		assert.Nil(t, author.DateOfDeath)
	})

	t.Run("messages", func(t *testing.T) {
		f := AuthorForm{FirstName: "", FamilyName: "Le Guin", DateOfDeath: "2018-02-30"}
		errs := f.Clean()
		assert.Equal(t, []string{
			"First name must be specified.",
			"Family name has non-alphanumeric characters.",
			"Invalid date of death",
		}, errs.Messages())
	})

	t.Run("too long", func(t *testing.T) {
		f := AuthorForm{FirstName: strings.Repeat("a", 101), FamilyName: "Smith"}
		errs := f.Clean()
		require.Len(t, errs, 1)
		assert.Equal(t, "first_name", errs[0].Field)
	})
}

func TestBookForm_Clean(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		f := BookForm{Title: " ", Author: "1", Summary: "", ISBN: "123"}
		errs := f.Clean()
		assert.Equal(t, []string{"Title must not be empty.", "Summary must not be empty."}, errs.Messages())
		assert.NotNil(t, f.Genre)
		assert.Empty(t, f.Genre)
	})

	t.Run("genres normalized and selectable", func(t *testing.T) {
		f := BookForm{Title: "A & B", Author: "3", Summary: "s", ISBN: "i", Genre: []string{"2"}}
		assert.Empty(t, f.Clean())
		assert.Equal(t, "A &amp; B", f.Title)
		assert.True(t, f.HasGenre(2))
		assert.False(t, f.HasGenre(5))
		assert.True(t, f.HasAuthor(3))

		book, err := f.Entity()
		require.NoError(t, err)
		assert.Equal(t, uint(3), book.AuthorID)
		assert.Equal(t, []uint{2}, book.GenreIDs())
	})

	t.Run("malformed author reference", func(t *testing.T) {
		f := BookForm{Title: "t", Author: "abc", Summary: "s", ISBN: "i"}
		assert.Empty(t, f.Clean())
		_, err := f.Entity()
		assert.Equal(t, apperr.Malformed, apperr.KindOf(err))
	})
}

func TestBookFormFrom(t *testing.T) {
	f := BookFormFrom(&entities.Book{
		Title:    "Dune",
		AuthorID: 4,
		Genres:   []entities.Genre{{ID: 1}, {ID: 9}},
	})
	assert.Equal(t, "4", f.Author)
	assert.True(t, f.HasGenre(9))
	assert.False(t, f.HasGenre(2))
}

func TestBookInstanceForm_Clean(t *testing.T) {
	t.Run("blank due back is absent", func(t *testing.T) {
		f := BookInstanceForm{Book: "1", Imprint: "Gollancz, 2011.", Status: "Available", DueBack: ""}
		assert.Empty(t, f.Clean())
		instance, err := f.Entity()
		require.NoError(t, err)
		assert.Nil(t, instance.DueBack)
		assert.Equal(t, entities.StatusAvailable, instance.Status)
	})

	t.Run("impossible due back", func(t *testing.T) {
		f := BookInstanceForm{Book: "1", Imprint: "x", DueBack: "2024-13-40"}
		errs := f.Clean()
		assert.Equal(t, []string{"Invalid date"}, errs.Messages())
	})

	t.Run("required fields", func(t *testing.T) {
		f := BookInstanceForm{}
		errs := f.Clean()
		assert.Equal(t, []string{"Book must be specified", "Imprint must be specified"}, errs.Messages())
	})

	t.Run("due back parsed", func(t *testing.T) {
		f := BookInstanceForm{Book: "2", Imprint: "x", DueBack: "2026-11-01"}
		assert.Empty(t, f.Clean())
		instance, err := f.Entity()
		require.NoError(t, err)
		require.NotNil(t, instance.DueBack)
		assert.Equal(t, time.November, instance.DueBack.Month())
		assert.True(t, f.HasBook(2))
	})
}
