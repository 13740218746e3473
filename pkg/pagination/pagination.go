package pagination

import (
	"errors"
	"math"
)

// ErrNegative is returned by Validate for a negative page or limit.
var ErrNegative = errors.New("page and limit must not be negative")

// Params represents input parameters for pagination.
// Page is zero-based. A nil or zero Limit means "no limit".
type Params struct {
	Page  int  `form:"page" json:"page"`
	Limit *int `form:"limit" json:"limit"`
}

// Validate rejects negative values.
func (p *Params) Validate() error {
	if p.Page < 0 || (p.Limit != nil && *p.Limit < 0) {
		return ErrNegative
	}
	return nil
}

// Limited reports whether a positive limit is set.
func (p *Params) Limited() bool {
	return p != nil && p.Limit != nil && *p.Limit > 0
}

// Offset calculates the offset for SQL queries. It saturates at math.MaxInt
// instead of wrapping when page*limit does not fit in an int.
func (p *Params) Offset() int {
	if !p.Limited() {
		return 0
	}
	if p.Page > math.MaxInt / *p.Limit {
		return math.MaxInt
	}
	return p.Page * *p.Limit
}

// PastEnd reports whether the requested page starts after the last of total rows.
func (p *Params) PastEnd(total int64) bool {
	return p.Limited() && int64(p.Offset()) >= total && p.Page > 0
}

// Size is the page size, or 0 when unlimited.
func (p *Params) Size() int {
	if !p.Limited() {
		return 0
	}
	return *p.Limit
}

// Pagination describes the page returned to the client.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	Limit       *int `json:"limit"`
	LastPage    int  `json:"last_page"`
}

// NewPagination builds page metadata for total matches.
// last_page is ceil(total/limit) - 1, never below zero. Without a limit
// everything is on page zero.
func NewPagination(p *Params, total int64) *Pagination {
	if !p.Limited() {
		var limit *int
		if p != nil {
			limit = p.Limit
		}
		return &Pagination{CurrentPage: 0, Limit: limit, LastPage: 0}
	}

	limit := int64(*p.Limit)
	last := int((total+limit-1)/limit) - 1
	if last < 0 {
		last = 0
	}
	return &Pagination{
		CurrentPage: p.Page,
		Limit:       p.Limit,
		LastPage:    last,
	}
}
