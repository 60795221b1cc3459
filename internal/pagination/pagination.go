package pagination

// Window is the run of page numbers a list screen shows around the
// current page. Every admin list used to recompute this inline; it lives
// here once.
type Window struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int   `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Pages      []int `json:"pages"`
}

// New computes the window. width caps how many page buttons are visible;
// the run is centered on the current page and shifted to stay inside
// [1, totalPages]. Page is clamped into range first.
func New(page, limit, totalItems, width int) Window {
	if limit < 1 {
		limit = 1
	}
	if width < 1 {
		width = 1
	}

	totalPages := (totalItems + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := page - width/2
	if start < 1 {
		start = 1
	}
	end := start + width - 1
	if end > totalPages {
		end = totalPages
		start = end - width + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return Window{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Pages:      pages,
	}
}
