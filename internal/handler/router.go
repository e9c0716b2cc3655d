package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	bookHandler "github.com/zhouzirui/bookshelf/backend/internal/handler/book"
	middlewarePkg "github.com/zhouzirui/bookshelf/backend/internal/middleware"
	bookService "github.com/zhouzirui/bookshelf/backend/internal/service/book"
	"github.com/zhouzirui/bookshelf/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(books *bookService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewarePkg.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	bookHandler.New(books).RegisterRoutes(r)

	return r
}
