package entities

import (
	"fmt"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

type BookInstanceStatus string

const (
	StatusAvailable   BookInstanceStatus = "Available"
	StatusMaintenance BookInstanceStatus = "Maintenance"
	StatusLoaned      BookInstanceStatus = "Loaned"
	StatusReserved    BookInstanceStatus = "Reserved"
)

// BookInstanceStatuses lists the statuses in the order forms present them.
var BookInstanceStatuses = []BookInstanceStatus{
	StatusMaintenance,
	StatusAvailable,
	StatusLoaned,
	StatusReserved,
}

// IsValid reports whether s is one of the known statuses.
func (s BookInstanceStatus) IsValid() bool {
	for _, known := range BookInstanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

const (
	GenreNameMinLength  = 3
	GenreNameMaxLength  = 100
	AuthorNameMaxLength = 100
)

// ValidationError is returned by entity hooks when a document violates
// a constraint that the store enforces on insert.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Genre) TableName() string {
	return "genres"
}

func (g Genre) URL() string {
	return fmt.Sprintf("/catalog/genre/%d", g.ID)
}

// BeforeCreate enforces the name length bounds. Updates overwrite the
// document as submitted and are not checked.
func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	n := utf8.RuneCountInString(g.Name)
	if n < GenreNameMinLength || n > GenreNameMaxLength {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("Genre name must be between %d and %d characters.", GenreNameMinLength, GenreNameMaxLength),
		}
	}
	return nil
}

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

// Name returns "family, first", or an empty string when either part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders the known years, e.g. "1920 - 1992" or "1948 - ".
func (a Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	s := ""
	if a.DateOfBirth != nil {
		s = a.DateOfBirth.Format("2006")
	}
	s += " - "
	if a.DateOfDeath != nil {
		s += a.DateOfDeath.Format("2006")
	}
	return s
}

func (a Author) URL() string {
	return fmt.Sprintf("/catalog/author/%d", a.ID)
}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512" json:"title"`
	AuthorID  uint      `gorm:"index" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author"`
	Summary   string    `gorm:"type:text" json:"summary"`
	ISBN      string    `gorm:"size:32" json:"isbn"`
	Genres    []Genre   `gorm:"many2many:book_genres;" json:"genre"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (b Book) URL() string {
	return fmt.Sprintf("/catalog/book/%d", b.ID)
}

// GenreIDs returns the ids of the referenced genres.
func (b Book) GenreIDs() []uint {
	ids := make([]uint, 0, len(b.Genres))
	for _, g := range b.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

type BookInstance struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	BookID    uint               `gorm:"index" json:"book_id"`
	Book      Book               `gorm:"foreignKey:BookID" json:"book"`
	Imprint   string             `gorm:"size:512" json:"imprint"`
	Status    BookInstanceStatus `gorm:"index;size:20;default:'Maintenance'" json:"status"`
	DueBack   *time.Time         `json:"due_back,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (BookInstance) TableName() string {
	return "book_instances"
}

func (bi BookInstance) URL() string {
	return fmt.Sprintf("/catalog/bookinstance/%d", bi.ID)
}

// DueBackFormatted renders the due date for display, e.g. "Oct 19th, 2026".
func (bi BookInstance) DueBackFormatted() string {
	if bi.DueBack == nil {
		return ""
	}
	d := bi.DueBack.Day()
	return bi.DueBack.Format("Jan ") + fmt.Sprintf("%d%s", d, ordinalSuffix(d)) + bi.DueBack.Format(", 2006")
}

// DueBackISO renders the due date as a form input value.
func (bi BookInstance) DueBackISO() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format("2006-01-02")
}

// BeforeCreate defaults a blank status and rejects unknown ones.
func (bi *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if bi.Status == "" {
		bi.Status = StatusMaintenance
	}
	if !bi.Status.IsValid() {
		return &ValidationError{Field: "status", Message: "Invalid status"}
	}
	return nil
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
