package utils

import (
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination holds normalized paging and search parameters for listing
// endpoints.
type Pagination struct {
	Page   int
	Limit  int
	Search string
}

// ParsePagination reads page, limit and search from the query string and
// normalizes them. The limit is capped server-side so a client cannot
// request unbounded pages.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", defaultPage)
	if page < 1 {
		page = defaultPage
	}

	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages returns the total page count for the given match total.
func (p Pagination) Pages(total int64) int64 {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return pages
}

// Envelope builds the pagination block returned by listing endpoints.
func (p Pagination) Envelope(total int64) fiber.Map {
	return fiber.Map{
		"page":  p.Page,
		"limit": p.Limit,
		"total": total,
		"pages": p.Pages(total),
	}
}
