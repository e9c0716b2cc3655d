package book

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/bookshelf/backend/internal/model/book"
	booksvc "github.com/zhouzirui/bookshelf/backend/internal/service/book"
	"github.com/zhouzirui/bookshelf/backend/pkg/utils"
)

const (
	msgNotFound = "Book not found"
	msgDeleted  = "Book deleted"
	msgInternal = "internal server error"
)

// Handler serves the /books resource family.
type Handler struct {
	books *booksvc.Service
}

// New 创建图书处理器
func New(books *booksvc.Service) *Handler {
	return &Handler{books: books}
}

// RegisterRoutes 注册图书相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

// handleList 列出图书，支持 author / genre 过滤
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := booksvc.Filter{
		Author: query.Get("author"),
		Genre:  query.Get("genre"),
	}

	books, err := h.books.List(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, books)
}

// handleCreate 新增图书
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload book.CreateBookRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.books.Create(r.Context(), payload)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, created)
}

// handleGet 按ID获取图书
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	found, err := h.books.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, found)
}

// handleUpdate 按ID更新图书，未提供的字段保持不变
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	// an unknown id wins over a bad body
	if _, err := h.books.Get(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	var payload book.UpdateBookRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.books.Update(r.Context(), id, payload)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

// handleDelete 按ID删除图书
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}

	if err := h.books.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondMessage(w, http.StatusOK, msgDeleted)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booksvc.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, book.ErrMissingField):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[books] request failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, msgInternal)
	}
}

// bookID parses the {id} segment. Only unsigned decimal digits name a book;
// anything else is answered like any other unknown id.
func bookID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || strings.TrimLeft(raw, "0123456789") != "" {
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}
