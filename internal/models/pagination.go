package models

// Pagination describes where a page sits in the full result set.
// Start and End are 1-based inclusive offsets; all fields are 0 for an empty result.
type Pagination struct {
	CurrentPage    int64 `json:"currentPage"`
	TotalPages     int64 `json:"totalPages"`
	TotalDocuments int64 `json:"totalDocuments"`
	Start          int64 `json:"start"`
	End            int64 `json:"end"`
}

// PageWindow clamps page to the last page for total documents and returns the page to
// read, the page count and the number of documents to skip. page and limit must be >= 1.
func PageWindow(total, page, limit int64) (clampedPage, totalPages, skip int64) {
	totalPages = 1
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages, (page - 1) * limit
}

// NewPagination builds the pagination block for a page that returned `returned` documents.
func NewPagination(total, page, limit int64, returned int) Pagination {
	if total <= 0 {
		return Pagination{}
	}

	page, totalPages, skip := PageWindow(total, page, limit)
	return Pagination{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalDocuments: total,
		Start:          skip + 1,
		End:            skip + int64(returned),
	}
}
