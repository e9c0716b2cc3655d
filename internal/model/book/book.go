package book

import (
	"errors"
	"strings"
)

var (
	// ErrMissingField is returned when a required request field is absent.
	ErrMissingField = errors.New("missing required field")
)

// Book is the single record type kept in the collection.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

// Collection is the ordered list of books loaded and saved as a unit.
type Collection []Book

// Clone returns an independent copy, never nil.
func (c Collection) Clone() Collection {
	return append(Collection{}, c...)
}

// CreateBookRequest is the POST /books body. Every field is required.
type CreateBookRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Genre  *string `json:"genre"`
}

// Validate reports every missing field in a single error.
func (r CreateBookRequest) Validate() error {
	missing := make([]string, 0, 3)
	if r.Title == nil {
		missing = append(missing, "title")
	}
	if r.Author == nil {
		missing = append(missing, "author")
	}
	if r.Genre == nil {
		missing = append(missing, "genre")
	}
	if len(missing) > 0 {
		return &FieldError{Fields: missing}
	}
	return nil
}

// UpdateBookRequest is the PUT /books/{id} body. Nil fields keep their value.
type UpdateBookRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Genre  *string `json:"genre"`
}

// Apply overwrites the fields present in the request.
func (r UpdateBookRequest) Apply(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.Genre != nil {
		b.Genre = *r.Genre
	}
}

// FieldError lists missing fields and unwraps to ErrMissingField.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return strings.Join(e.Fields, ", ") + " required"
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
