package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/bookshelf/backend/internal/config"
	"github.com/zhouzirui/bookshelf/backend/internal/handler"
	"github.com/zhouzirui/bookshelf/backend/internal/logging"
	"github.com/zhouzirui/bookshelf/backend/internal/model/book"
	bookService "github.com/zhouzirui/bookshelf/backend/internal/service/book"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logCloser := logging.Setup(cfg.Log)
	defer logCloser.Close()

	store, closeStore, err := openStore(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to open book store: %v", err)
	}
	defer closeStore.Close()

	books := bookService.NewService(store, bookService.WithIDStrategy(cfg.Storage.IDStrategy))
	router := handler.NewRouter(books)

	startServer(ctx, cfg.Server, router)
}

func openStore(cfg config.StorageConfig) (book.Store, io.Closer, error) {
	switch cfg.Kind {
	case config.StoreFile:
		log.Printf("[books] using file store at %s", cfg.FilePath)
		return book.NewFileStore(cfg.FilePath), noopCloser{}, nil
	case config.StoreSQLite:
		store, err := book.OpenSQLiteStore(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[books] using sqlite store at %s", cfg.SQLiteDSN)
		return store, store, nil
	case config.StoreMemory:
		log.Println("[books] using in-memory store, data is lost on exit")
		return book.NewMemoryStore(nil), noopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStore, cfg.Kind)
	}
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("bookshelf backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
