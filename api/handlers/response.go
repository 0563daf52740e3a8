package handlers

import (
	"github.com/gin-gonic/gin"
)

// response is the envelope every handler writes.
type response struct {
	Data   any      `json:"data"`
	Errors []string `json:"errors"`
}

func writeResponse(c *gin.Context, data any, statusCode int, errors []string) {
	c.JSON(statusCode, response{
		Data:   data,
		Errors: errors,
	})
}

type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	PageSize     int  `json:"page_size"`
	TotalPages   int  `json:"total_pages"`
	HasNextPage  bool `json:"has_next_page"`
	HasPrevPage  bool `json:"has_prev_page"`
	TotalResults int  `json:"total_results"`
}

// calculatePagination describes the page starting at offset. A non-positive
// limit or a negative offset is treated as the first page of one result.
func calculatePagination(total, limit, offset int) Pagination {
	pageSize := max(limit, 1)
	offset = max(offset, 0)

	currentPage := (offset / pageSize) + 1
	totalPages := max((total+pageSize-1)/pageSize, 1)

	return Pagination{
		CurrentPage:  currentPage,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		HasNextPage:  currentPage < totalPages,
		HasPrevPage:  currentPage > 1,
		TotalResults: total,
	}
}
