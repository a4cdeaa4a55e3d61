package utils

import (
	"math"
	"strconv"
)

// PositiveIntOr parses a query value as a positive integer, returning
// fallback when it is missing, malformed or below one.
func PositiveIntOr(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// PageCount is the number of pages of perPage items needed to hold total.
func PageCount(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// PageOffset is the row offset of the first item on a one-based page.
// Pages too far out to address saturate at the largest whole-page offset.
func PageOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt / perPage * perPage
	}
	return (page - 1) * perPage
}
