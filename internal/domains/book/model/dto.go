package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type CreateBookRequest struct {
	Title  string   `json:"title" binding:"required"`
	ISBN   string   `json:"isbn" binding:"required"`
	Author string   `json:"author"`
	Genres []string `json:"genres"`
	Copies int      `json:"copies"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			is.ISBN.Error("invalid isbn"),
		),
		validation.Field(&r.Author, validation.Length(0, 255)),
		validation.Field(&r.Copies,
			validation.Min(0).Error("copies cannot be negative"),
		),
	)
}

type UpdateBookRequest struct {
	Title  *string  `json:"title"`
	ISBN   *string  `json:"isbn"`
	Author *string  `json:"author"`
	Genres []string `json:"genres"`
	Copies *int     `json:"copies"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
		),
		validation.Field(&r.ISBN,
			validation.When(r.ISBN != nil, is.ISBN.Error("invalid isbn")),
		),
		validation.Field(&r.Copies,
			validation.When(r.Copies != nil, validation.Min(0).Error("copies cannot be negative")),
		),
	)
}
