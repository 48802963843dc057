package pagination

import (
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrPageOutOfRange signals a request for a page past the end of the result
// set. Out-of-range pages are a hard error, not an empty result.
var ErrPageOutOfRange = errors.New("page out of range")

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Params are 1-based page parameters.
type Params struct {
	Page    int
	PerPage int
}

func (p Params) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Page,
			validation.Required.Error("page is required"),
			validation.Min(1).Error("page must be at least 1"),
		),
		validation.Field(&p.PerPage,
			validation.Required.Error("per_page is required"),
			validation.Min(1).Error("per_page must be at least 1"),
			validation.Max(MaxPerPage),
		),
	)
}

// FromQuery parses page/per_page query strings, applying defaults for
// absent values. Malformed values surface through Validate.
func FromQuery(pageStr, perPageStr string) Params {
	p := Params{Page: DefaultPage, PerPage: DefaultPerPage}
	if pageStr != "" {
		if v, err := strconv.Atoi(pageStr); err == nil {
			p.Page = v
		} else {
			p.Page = 0 // force a validation failure
		}
	}
	if perPageStr != "" {
		if v, err := strconv.Atoi(perPageStr); err == nil {
			p.PerPage = v
		} else {
			p.PerPage = 0
		}
	}
	return p
}

// Offset is the row offset for the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// CheckRange enforces the hard out-of-range rule against the total row
// count. Page 1 of an empty set is allowed; any later page that starts
// past the end is not.
func (p Params) CheckRange(total int) error {
	if p.Page > 1 && p.Offset() >= total {
		return ErrPageOutOfRange
	}
	return nil
}
