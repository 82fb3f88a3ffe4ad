package utils

// NormalizePagination clamps out-of-range page and limit values and returns
// the SQL limit and offset to use.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return limit, (page - 1) * limit
}

// TotalPages returns how many pages a result set of totalRecords spans at
// the given page size. Zero records means zero pages.
func TotalPages(totalRecords int64, limit int) int {
	if totalRecords <= 0 || limit <= 0 {
		return 0
	}
	pages := totalRecords / int64(limit)
	if totalRecords%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
