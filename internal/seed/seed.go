// Package seed fills an empty catalog with a small sample library.
package seed

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/bookinstances"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/forms"
)

// ErrNotEmpty is returned when the catalog already holds books.
var ErrNotEmpty = errors.New("catalog is not empty")

// Result counts the documents created.
type Result struct {
	Genres        int
	Authors       int
	Books         int
	BookInstances int
}

type authorSeed struct {
	first, family string
	born, died    string
}

type bookSeed struct {
	title, summary, isbn string
	author               int
	genres               []int
}

type instanceSeed struct {
	book    int
	imprint string
	status  entities.BookInstanceStatus
}

var (
	sampleGenres = []string{"Fantasy", "Science Fiction", "French Poetry"}

	sampleAuthors = []authorSeed{
		{"Patrick", "Rothfuss", "1973-06-06", ""},
		{"Ben", "Bova", "1932-11-08", ""},
		{"Isaac", "Asimov", "1920-01-02", "1992-04-06"},
		{"Bob", "Billings", "", ""},
		{"Jim", "Jones", "1971-12-16", ""},
	}

	sampleBooks = []bookSeed{
		{
			title:   "The Name of the Wind (The Kingkiller Chronicle, #1)",
			summary: "I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life.",
			isbn:    "9781473211896",
			author:  0,
			genres:  []int{0},
		},
		{
			title:   "The Wise Man's Fear (The Kingkiller Chronicle, #2)",
			summary: "Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic.",
			isbn:    "9788401352836",
			author:  0,
			genres:  []int{0},
		},
		{
			title:   "The Slow Regard of Silent Things (Kingkiller Chronicle)",
			summary: "Deep below the University, there is a dark place. Few people know of it: a broken web of ancient passageways and abandoned rooms.",
			isbn:    "9780756411336",
			author:  0,
			genres:  []int{0},
		},
		{
			title:   "Apes and Angels",
			summary: "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it.",
			isbn:    "9780765379528",
			author:  1,
			genres:  []int{1},
		},
		{
			title:   "Death Wave",
			summary: "In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system.",
			isbn:    "9780765379504",
			author:  1,
			genres:  []int{1},
		},
		{
			title:   "Test Book 1",
			summary: "Summary of test book 1",
			isbn:    "ISBN111111",
			author:  3,
			genres:  []int{2, 1},
		},
		{
			title:   "Test Book 2",
			summary: "Summary of test book 2",
			isbn:    "ISBN222222",
			author:  3,
		},
	}

	sampleInstances = []instanceSeed{
		{0, "London Gollancz, 2014.", entities.StatusAvailable},
		{1, "Gollancz, 2011.", entities.StatusLoaned},
		{2, "Gollancz, 2015.", ""},
		{3, "New York Tom Doherty Associates, 2016.", entities.StatusAvailable},
		{3, "New York Tom Doherty Associates, 2016.", entities.StatusAvailable},
		{3, "New York Tom Doherty Associates, 2016.", entities.StatusAvailable},
		{4, "New York, NY Tom Doherty Associates, LLC, 2015.", entities.StatusAvailable},
		{4, "New York, NY Tom Doherty Associates, LLC, 2015.", entities.StatusMaintenance},
		{4, "New York, NY Tom Doherty Associates, LLC, 2015.", entities.StatusLoaned},
		{0, "Imprint XXX2", ""},
		{1, "Imprint XXX3", ""},
	}
)

// Populate inserts the sample library. Text fields are stored escaped, the
// same way submitted forms are. Loaned copies are due back two weeks after now.
func Populate(db *gorm.DB, now time.Time) (Result, error) {
	var res Result

	n, err := books.NewRepository(db).Count()
	if err != nil {
		return res, err
	}
	if n > 0 {
		return res, ErrNotEmpty
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		genreRepo := genres.NewRepository(tx)
		authorRepo := authors.NewRepository(tx)
		bookRepo := books.NewRepository(tx)
		instanceRepo := bookinstances.NewRepository(tx)

		createdGenres := make([]entities.Genre, 0, len(sampleGenres))
		for _, name := range sampleGenres {
			genre := &entities.Genre{Name: forms.Escape(name)}
			if err := genreRepo.Create(genre); err != nil {
				return fmt.Errorf("genre %q: %w", name, err)
			}
			createdGenres = append(createdGenres, *genre)
			res.Genres++
		}

		createdAuthors := make([]entities.Author, 0, len(sampleAuthors))
		for _, a := range sampleAuthors {
			author, err := a.entity()
			if err != nil {
				return err
			}
			if err := authorRepo.Create(author); err != nil {
				return fmt.Errorf("author %q: %w", a.family, err)
			}
			createdAuthors = append(createdAuthors, *author)
			res.Authors++
		}

		createdBooks := make([]entities.Book, 0, len(sampleBooks))
		for _, b := range sampleBooks {
			book := &entities.Book{
				Title:    forms.Escape(b.title),
				AuthorID: createdAuthors[b.author].ID,
				Summary:  forms.Escape(b.summary),
				ISBN:     forms.Escape(b.isbn),
			}
			for _, g := range b.genres {
				book.Genres = append(book.Genres, entities.Genre{ID: createdGenres[g].ID})
			}
			if err := bookRepo.Create(book); err != nil {
				return fmt.Errorf("book %q: %w", b.title, err)
			}
			createdBooks = append(createdBooks, *book)
			res.Books++
		}

		dueBack := now.AddDate(0, 0, 14).Truncate(24 * time.Hour)
		for _, bi := range sampleInstances {
			instance := &entities.BookInstance{
				BookID:  createdBooks[bi.book].ID,
				Imprint: forms.Escape(bi.imprint),
				Status:  bi.status,
			}
			if bi.status == entities.StatusLoaned {
				due := dueBack
				instance.DueBack = &due
			}
			if err := instanceRepo.Create(instance); err != nil {
				return fmt.Errorf("book instance %q: %w", bi.imprint, err)
			}
			res.BookInstances++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	log.Info().
		Int("genres", res.Genres).
		Int("authors", res.Authors).
		Int("books", res.Books).
		Int("book_instances", res.BookInstances).
		Msg("sample catalog populated")
	return res, nil
}

func (a authorSeed) entity() (*entities.Author, error) {
	born, err := forms.ParseOptionalDate(a.born)
	if err != nil {
		return nil, err
	}
	died, err := forms.ParseOptionalDate(a.died)
	if err != nil {
		return nil, err
	}
	return &entities.Author{
		FirstName:   a.first,
		FamilyName:  a.family,
		DateOfBirth: born,
		DateOfDeath: died,
	}, nil
}
