package types

// Filter represents query parameters for filtering and pagination.
type Filter struct {
	Search         string            `json:"search,omitempty"`
	Sort           map[string]string `json:"sort,omitempty"`
	Filter         map[string]string `json:"filter,omitempty"`
	DateFrom       string            `json:"date_from,omitempty"`
	DateTo         string            `json:"date_to,omitempty"`
	Limit          int               `json:"limit"`
	Page           int               `json:"page"`
	WithPagination bool              `json:"with_pagination"`
}

// Pagination represents pagination metadata.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// http://localhost:8080/api/orders?search=Иванов&sort[createdAt]=desc&filter[orderStatus]=Новая&limit=25&page=2&withPagination=true
