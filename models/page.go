package models

// DefaultPageSize is the number of users shown per listing page.
const DefaultPageSize = 30

// Page is a bounded window over the ordered user collection.
type Page struct {
	// Users holds at most Size users, ordered by ID.
	Users []User `json:"users"`

	// Index is the 1-based page number that was requested.
	Index int `json:"page"`

	// Size is the maximum number of users per page.
	Size int `json:"per_page"`

	// Total is the number of users in the whole collection.
	Total int `json:"total"`

	// TotalPages is ceil(Total / Size).
	TotalPages int `json:"total_pages"`

	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewPage computes the window metadata for index over a collection of total
// users. Users is left empty; stores fill it in when InRange reports true.
func NewPage(index, size, total int) Page {
	if size < 1 {
		size = DefaultPageSize
	}

	totalPages := (total + size - 1) / size

	return Page{
		Users:       []User{},
		Index:       index,
		Size:        size,
		Total:       total,
		TotalPages:  totalPages,
		HasPrevious: index > 1 && totalPages > 0,
		HasNext:     index >= 1 && index < totalPages,
	}
}

// InRange reports whether Index addresses an existing page.
func (p Page) InRange() bool {
	return p.Index >= 1 && p.Index <= p.TotalPages
}

// Offset returns the number of users preceding this page.
func (p Page) Offset() int {
	if p.Index < 1 {
		return 0
	}
	return (p.Index - 1) * p.Size
}
