package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/book"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
	"github.com/Ansan-Yabesh/BookAPI/internal/logger"
	"github.com/Ansan-Yabesh/BookAPI/internal/transport/http/dto"
	"github.com/Ansan-Yabesh/BookAPI/internal/transport/http/response"
)

type BookHandler struct {
	svc *book.Service
}

func NewBookHandler(svc *book.Service) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context(), book.ListFilter{
		Genre:  r.URL.Query().Get("genre"),
		Author: r.URL.Query().Get("author"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewBookViews(books))
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewBookView(b))
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.CreateBookRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.Create(r.Context(), caller, domain.Book{
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("book_id", b.ID).
		Str("actor_id", caller.AccountID).
		Msg("book_created")

	response.Created(w, dto.NewBookView(b))
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdateBookRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.Update(r.Context(), caller, chi.URLParam(r, "id"), book.BookUpdate{
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewBookView(b))
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}

func (h *BookHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.AddFavorite(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.StatusData{Status: "favorited"})
}

func (h *BookHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.RemoveFavorite(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}

func (h *BookHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	books, err := h.svc.ListFavorites(r.Context(), caller)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewBookViews(books))
}
