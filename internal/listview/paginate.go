package listview

type Page[T any] struct {
	Records    []T `json:"records"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
	PageSize   int `json:"page_size"`
}

func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// TotalPages is ceil(n/size), and 1 for an empty list.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = 1
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage keeps a 1-based page index inside [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate slices records into the requested 1-based page, clamping out of
// range requests.
func Paginate[T any](records []T, page, size int) Page[T] {
	if size <= 0 {
		size = 1
	}
	total := len(records)
	totalPages := TotalPages(total, size)
	page = ClampPage(page, totalPages)

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}

	slice := make([]T, end-start)
	copy(slice, records[start:end])

	return Page[T]{
		Records:    slice,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		PageSize:   size,
	}
}
