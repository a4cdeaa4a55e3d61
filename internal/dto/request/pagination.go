package request

import "starter-kit/pkg/utils"

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PageRequest selects one page of a listing. Zero values fall back to the
// first page of DefaultPerPage items.
type PageRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// PageFromQuery reads the page and per_page query parameters.
func PageFromQuery(page, perPage string) PageRequest {
	return PageRequest{
		Page:    utils.PositiveIntOr(page, 1),
		PerPage: utils.PositiveIntOr(perPage, DefaultPerPage),
	}
}

// Normalize clamps Page and PerPage into their accepted ranges.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = p.Limit()
}

func (p PageRequest) Offset() int {
	return utils.PageOffset(p.Page, p.Limit())
}

func (p PageRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return DefaultPerPage
	case p.PerPage > MaxPerPage:
		return MaxPerPage
	}
	return p.PerPage
}
