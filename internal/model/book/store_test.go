package book_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/bookshelf/backend/internal/model/book"
)

func sampleBooks() book.Collection {
	return book.Collection{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi"},
		{ID: 2, Title: "Emma", Author: "Jane Austen", Genre: "Romance"},
		{ID: 3, Title: "Persuasion", Author: "Jane Austen", Genre: "Romance"},
	}
}

func newSQLiteStore(t *testing.T) *book.SQLiteStore {
	t.Helper()
	store, err := book.OpenSQLiteStore("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoresRoundTrip(t *testing.T) {
	stores := map[string]book.Store{
		"memory": book.NewMemoryStore(nil),
		"file":   book.NewFileStore(filepath.Join(t.TempDir(), "books.json")),
		"sqlite": newSQLiteStore(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := store.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, empty)
			assert.Empty(t, empty)

			require.NoError(t, store.Save(ctx, sampleBooks()))
			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleBooks(), got)

			trimmed := sampleBooks()[1:]
			require.NoError(t, store.Save(ctx, trimmed))
			got, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, trimmed, got)
		})
	}
}

func TestMemoryStoreCopiesOnLoad(t *testing.T) {
	store := book.NewMemoryStore(sampleBooks())
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	loaded[0].Title = "changed"

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dune", again[0].Title)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := book.NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	books, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, book.Collection{}, books)
}

func TestFileStoreCorruptFileIsEmpty(t *testing.T) {
	for name, content := range map[string]string{
		"garbage": "{not json",
		"empty":   "",
		"object":  `{"id": 1}`,
		"null":    "null",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "books.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			books, err := book.NewFileStore(path).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, book.Collection{}, books)
		})
	}
}

func TestFileStoreSaveIsIndented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	store := book.NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), sampleBooks()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "[\n" +
		"    {\n" +
		"        \"id\": 1,\n" +
		"        \"title\": \"Dune\",\n" +
		"        \"author\": \"Frank Herbert\",\n" +
		"        \"genre\": \"Sci-Fi\"\n" +
		"    }\n" +
		"]"
	assert.Equal(t, want, string(data))
}

func TestFileStoreSaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")

	require.NoError(t, book.NewFileStore(path).Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileStoreSaveFailsOnMissingDirectory(t *testing.T) {
	store := book.NewFileStore(filepath.Join(t.TempDir(), "missing", "books.json"))

	err := store.Save(context.Background(), sampleBooks())
	assert.Error(t, err)
}

func TestSQLiteStoreSavesLargeCollections(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	books := make(book.Collection, 0, 250)
	for i := 1; i <= 250; i++ {
		books = append(books, book.Book{ID: i, Title: "t", Author: "a", Genre: "g"})
	}
	require.NoError(t, store.Save(ctx, books))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 250)
	assert.Equal(t, 250, got[249].ID)
}
