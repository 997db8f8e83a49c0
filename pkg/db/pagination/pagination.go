// Package pagination implements offset pagination shared by list endpoints.
package pagination

// Defaults and bounds for page-based listing. Out-of-range input is clamped
// rather than rejected so that sloppy dashboard clients stay functional; the
// clamping is deterministic and part of the API contract.
const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 500
)

// Pagination carries the raw page parameters bound from a query string.
type Pagination struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize clamps the parameters into their valid ranges: page >= 1,
// 1 <= limit <= MaxLimit, with defaults applied for zero values.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the record offset for the normalized page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageInfo is the pagination block echoed on list responses.
type PageInfo struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// BuildPageInfo derives response metadata from a normalized request and the
// total match count. Pages is ceil(total/limit); zero matches yield zero
// pages, which is not an error.
func BuildPageInfo(p Pagination, total int64) PageInfo {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return PageInfo{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}
