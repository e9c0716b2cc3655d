// Package logging points the standard logger, and chi's request logger, at
// stdout or at a size-rotated file.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zhouzirui/bookshelf/backend/internal/config"
)

// Writer returns the destination described by cfg. The returned closer must
// be closed on shutdown.
func Writer(cfg config.LogConfig) io.WriteCloser {
	if cfg.File == "" {
		return nopCloser{os.Stdout}
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// Setup routes all service logging to the writer built from cfg.
func Setup(cfg config.LogConfig) io.Closer {
	w := Writer(cfg)
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	middleware.DefaultLogger = middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(w, "", log.LstdFlags),
		NoColor: cfg.File != "",
	})
	return w
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
