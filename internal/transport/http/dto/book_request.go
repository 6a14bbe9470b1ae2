package dto

import "strings"

type CreateBookRequest struct {
	Title         string `json:"title" validate:"required,max=300"`
	Author        string `json:"author" validate:"required,max=200"`
	Genre         string `json:"genre" validate:"required,max=100"`
	Description   string `json:"description" validate:"omitempty,max=5000"`
	PublishedYear int    `json:"published_year" validate:"omitempty,gte=0,lte=2100"`
}

func (r *CreateBookRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Genre = strings.TrimSpace(r.Genre)
	return validateStruct(r)
}

type UpdateBookRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=300"`
	Author        *string `json:"author" validate:"omitempty,min=1,max=200"`
	Genre         *string `json:"genre" validate:"omitempty,min=1,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=5000"`
	PublishedYear *int    `json:"published_year" validate:"omitempty,gte=0,lte=2100"`
}

func (r *UpdateBookRequest) Validate() error {
	return validateStruct(r)
}
