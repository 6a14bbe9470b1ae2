package dto

import (
	"time"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
)

type BookView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description,omitempty"`
	PublishedYear int       `json:"published_year,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewBookView(b domain.Book) BookView {
	return BookView{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Description:   b.Description,
		PublishedYear: b.PublishedYear,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func NewBookViews(bs []domain.Book) []BookView {
	out := make([]BookView, 0, len(bs))
	for _, b := range bs {
		out = append(out, NewBookView(b))
	}
	return out
}
