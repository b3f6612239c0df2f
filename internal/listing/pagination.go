package listing

import "math"

// TotalPages is ceil(total/size) with a floor of 1, so an empty listing still
// reports page 1 of 1.
func TotalPages(total int64, size int) int {
	if size < 1 {
		size = 1
	}
	if total <= 0 {
		return 1
	}
	pages := (total + int64(size) - 1) / int64(size)
	return int(pages)
}

// ClampPage constrains a requested page to [1, totalPages].
func ClampPage(requested, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if requested < 1 {
		return 1
	}
	if requested > totalPages {
		return totalPages
	}
	return requested
}

// Offset is the number of rows skipped before page. It saturates at
// math.MaxInt instead of overflowing for absurd page numbers.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}
