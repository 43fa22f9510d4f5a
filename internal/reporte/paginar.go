package reporte

// Paginar returns the page-th slice (1-based) of size limit and the page count.
// Out-of-range pages return an empty slice.
func Paginar[T any](items []T, page, limit int) ([]T, int) {
	if limit <= 0 {
		limit = len(items)
		if limit == 0 {
			return []T{}, 0
		}
	}
	if page < 1 {
		page = 1
	}
	pages := (len(items) + limit - 1) / limit
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}, pages
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pages
}
