package book

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/zhouzirui/bookshelf/backend/internal/model/book"
)

var (
	// ErrNotFound is returned when no book carries the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrUnknownIDStrategy is returned by ParseIDStrategy for unsupported names.
	ErrUnknownIDStrategy = errors.New("unknown id strategy")
)

// IDStrategy decides the id given to a newly created book.
type IDStrategy string

const (
	// IDByLength assigns len(collection)+1. Ids can repeat once a book has
	// been deleted; kept as the default for compatibility with existing files.
	IDByLength IDStrategy = "length"
	// IDByMax assigns the largest existing id plus one.
	IDByMax IDStrategy = "max"
)

// ParseIDStrategy validates a configured strategy name.
func ParseIDStrategy(raw string) (IDStrategy, error) {
	switch s := IDStrategy(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return IDByLength, nil
	case IDByLength, IDByMax:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIDStrategy, raw)
	}
}

func (s IDStrategy) next(books book.Collection) int {
	if s == IDByMax {
		return lo.Max(lo.Map(books, func(b book.Book, _ int) int { return b.ID })) + 1
	}
	return len(books) + 1
}

// Filter narrows List results. Empty fields match everything; set fields
// match case-insensitively and exactly.
type Filter struct {
	Author string
	Genre  string
}

func (f Filter) match(b book.Book) bool {
	if f.Author != "" && !strings.EqualFold(b.Author, f.Author) {
		return false
	}
	if f.Genre != "" && !strings.EqualFold(b.Genre, f.Genre) {
		return false
	}
	return true
}

// Service implements the book operations on top of a Store. Each call loads
// the collection afresh and saves it back after a mutation; concurrent
// writers race and the last save wins.
type Service struct {
	store      book.Store
	idStrategy IDStrategy
}

// Option customises a Service.
type Option func(*Service)

// WithIDStrategy overrides the default IDByLength strategy.
func WithIDStrategy(strategy IDStrategy) Option {
	return func(s *Service) {
		s.idStrategy = strategy
	}
}

// NewService builds a Service over store.
func NewService(store book.Store, opts ...Option) *Service {
	svc := &Service{store: store, idStrategy: IDByLength}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// List returns the books matching filter in insertion order.
func (s *Service) List(ctx context.Context, filter Filter) (book.Collection, error) {
	books, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(books, func(b book.Book, _ int) bool { return filter.match(b) }), nil
}

// Create appends a new book and persists the collection.
func (s *Service) Create(ctx context.Context, req book.CreateBookRequest) (book.Book, error) {
	if err := req.Validate(); err != nil {
		return book.Book{}, err
	}

	books, err := s.load(ctx)
	if err != nil {
		return book.Book{}, err
	}

	created := book.Book{
		ID:     s.idStrategy.next(books),
		Title:  *req.Title,
		Author: *req.Author,
		Genre:  *req.Genre,
	}
	if err := s.save(ctx, append(books, created)); err != nil {
		return book.Book{}, err
	}
	return created, nil
}

// Get returns the first book with id.
func (s *Service) Get(ctx context.Context, id int) (book.Book, error) {
	books, err := s.load(ctx)
	if err != nil {
		return book.Book{}, err
	}
	found, ok := lo.Find(books, func(b book.Book) bool { return b.ID == id })
	if !ok {
		return book.Book{}, ErrNotFound
	}
	return found, nil
}

// Update overwrites the fields present in req on the first book with id.
func (s *Service) Update(ctx context.Context, id int, req book.UpdateBookRequest) (book.Book, error) {
	books, err := s.load(ctx)
	if err != nil {
		return book.Book{}, err
	}

	_, idx, ok := lo.FindIndexOf(books, func(b book.Book) bool { return b.ID == id })
	if !ok {
		return book.Book{}, ErrNotFound
	}
	req.Apply(&books[idx])

	if err := s.save(ctx, books); err != nil {
		return book.Book{}, err
	}
	return books[idx], nil
}

// Delete removes every book carrying id.
func (s *Service) Delete(ctx context.Context, id int) error {
	books, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := lo.Reject(books, func(b book.Book, _ int) bool { return b.ID == id })
	if len(kept) == len(books) {
		return ErrNotFound
	}
	return s.save(ctx, kept)
}

func (s *Service) load(ctx context.Context) (book.Collection, error) {
	books, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	return books, nil
}

func (s *Service) save(ctx context.Context, books book.Collection) error {
	if err := s.store.Save(ctx, books); err != nil {
		return fmt.Errorf("save books: %w", err)
	}
	return nil
}
