package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// DefaultPageSize is used when the client does not ask for a size
	DefaultPageSize = 10
	// MaxPageSize caps how many items a client may request per page
	MaxPageSize = 30
)

// PageParams carries the parsed pagination query parameters
type PageParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ParsePageParams reads the `page` and `page_size` query parameters.
// Out-of-range values are clamped rather than rejected.
func ParsePageParams(c *gin.Context) PageParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return PageParams{Page: page, PageSize: pageSize}
}

// Scope returns a gorm scope applying the offset/limit for the page
func (p PageParams) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
	}
}
