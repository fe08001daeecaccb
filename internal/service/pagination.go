package service

import "rides/internal/domain"

// Pagination defaults applied when a request omits page or size.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// RidePage is one page of rides plus the paging arithmetic behind it.
type RidePage struct {
	TotalItems int
	TotalPages int
	Page       int
	// Size is min(requested size, TotalItems), not len(Data).
	Size int
	Data []*domain.Ride
}

// Paginate slices rides into the requested page, keeping their order. A page
// past the end is clamped to the last page. Non-positive page or size fall
// back to the defaults.
func Paginate(rides []*domain.Ride, page, size int) *RidePage {
	if page <= 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	count := len(rides)
	totalPages := (count + size - 1) / size
	if page > totalPages {
		page = totalPages
	}

	startIndex := 0
	if page > 0 {
		startIndex = (page - 1) * size
	}
	endIndex := min(startIndex+size, count)

	return &RidePage{
		TotalItems: count,
		TotalPages: totalPages,
		Page:       page,
		Size:       min(size, count),
		Data:       rides[startIndex:endIndex],
	}
}
