package book

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

const booksTable = "books"

// insertBatch keeps each INSERT under sqlite's bound-parameter limit.
const insertBatch = 100

const migrate = `
	create table if not exists books (
		position integer primary key,
		id integer not null,
		title text not null,
		author text not null,
		genre text not null
	);
`

// SQLiteStore keeps the collection in a sqlite table. It honours the same
// contract as FileStore: Save rewrites every row, Load returns them in order.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens dsn and ensures the books table exists.
func OpenSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(migrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite %s: %w", dsn, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load selects every row in insertion order.
func (s *SQLiteStore) Load(ctx context.Context) (Collection, error) {
	rows, err := sq.Select("id", "title", "author", "genre").
		From(booksTable).
		OrderBy("position").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := Collection{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

// Save replaces the table contents with books inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, books Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := sq.Delete(booksTable).RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("clear books: %w", err)
	}

	for start := 0; start < len(books); start += insertBatch {
		end := min(start+insertBatch, len(books))
		insert := sq.Insert(booksTable).Columns("position", "id", "title", "author", "genre")
		for i := start; i < end; i++ {
			b := books[i]
			insert = insert.Values(i+1, b.ID, b.Title, b.Author, b.Genre)
		}
		if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("insert books: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit books: %w", err)
	}
	return nil
}
