package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAuthor_Name(t *testing.T) {
	assert.Equal(t, "Rothfuss, Patrick", Author{FirstName: "Patrick", FamilyName: "Rothfuss"}.Name())
	assert.Equal(t, "", Author{FirstName: "Patrick"}.Name())
	assert.Equal(t, "", Author{FamilyName: "Rothfuss"}.Name())
}

func TestAuthor_Lifespan(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{"no dates", Author{}, ""},
		{"both dates", Author{DateOfBirth: date(1920, 1, 2), DateOfDeath: date(1992, 4, 6)}, "1920 - 1992"},
		{"birth only", Author{DateOfBirth: date(1973, 6, 6)}, "1973 - "},
		{"death only", Author{DateOfDeath: date(1992, 4, 6)}, " - 1992"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.Lifespan())
		})
	}
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "/catalog/genre/3", Genre{ID: 3}.URL())
	assert.Equal(t, "/catalog/author/4", Author{ID: 4}.URL())
	assert.Equal(t, "/catalog/book/5", Book{ID: 5}.URL())
	assert.Equal(t, "/catalog/bookinstance/6", BookInstance{ID: 6}.URL())
}

func TestGenre_BeforeCreate(t *testing.T) {
	assert.NoError(t, (&Genre{Name: "Fantasy"}).BeforeCreate(nil))
	assert.NoError(t, (&Genre{Name: "Sci"}).BeforeCreate(nil))

	err := (&Genre{Name: "Sc"}).BeforeCreate(nil)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	long := make([]byte, GenreNameMaxLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, (&Genre{Name: string(long)}).BeforeCreate(nil))
}

func TestBookInstance_BeforeCreate(t *testing.T) {
	bi := &BookInstance{}
	assert.NoError(t, bi.BeforeCreate(nil))
	assert.Equal(t, StatusMaintenance, bi.Status)

	assert.NoError(t, (&BookInstance{Status: StatusLoaned}).BeforeCreate(nil))
	assert.Error(t, (&BookInstance{Status: "Lost"}).BeforeCreate(nil))
}

func TestBookInstance_DueBack(t *testing.T) {
	bi := BookInstance{}
	assert.Equal(t, "", bi.DueBackFormatted())
	assert.Equal(t, "", bi.DueBackISO())

	bi.DueBack = date(2026, 10, 1)
	assert.Equal(t, "Oct 1st, 2026", bi.DueBackFormatted())
	assert.Equal(t, "2026-10-01", bi.DueBackISO())

	bi.DueBack = date(2026, 10, 12)
	assert.Equal(t, "Oct 12th, 2026", bi.DueBackFormatted())

	bi.DueBack = date(2026, 10, 23)
	assert.Equal(t, "Oct 23rd, 2026", bi.DueBackFormatted())
}

func TestBook_GenreIDs(t *testing.T) {
	b := Book{Genres: []Genre{{ID: 2}, {ID: 7}}}
	assert.Equal(t, []uint{2, 7}, b.GenreIDs())
	assert.Empty(t, Book{}.GenreIDs())
}
