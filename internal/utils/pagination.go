package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lynxview-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Skip  int
	Limit int
}

// PageLimits bounds the limit a list endpoint accepts
type PageLimits struct {
	Default int
	Max     int
}

var (
	DefaultPageLimits    = PageLimits{Default: constants.DefaultPageSize, Max: constants.MaxPageSize}
	TaskPageLimits       = PageLimits{Default: constants.DefaultTaskPageSize, Max: constants.MaxPageSize}
	TechnologyPageLimits = PageLimits{Default: constants.DefaultTechnologyPageSize, Max: constants.MaxTechnologyPageSize}
)

// GetPaginationParams extracts and validates skip/limit from the query string.
// Out-of-range values are rejected rather than clamped.
func GetPaginationParams(c *gin.Context, limits PageLimits) (PaginationParams, error) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		return PaginationParams{}, fmt.Errorf("skip must be a non-negative integer")
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(limits.Default)))
	if err != nil || limit < constants.MinPageSize || limit > limits.Max {
		return PaginationParams{}, fmt.Errorf("limit must be between %d and %d", constants.MinPageSize, limits.Max)
	}

	return PaginationParams{Skip: skip, Limit: limit}, nil
}
