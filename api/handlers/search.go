package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docsearch/logger"
	"github.com/meghashyamc/docsearch/services/search"
	"github.com/meghashyamc/docsearch/textsafe"
	"github.com/meghashyamc/docsearch/validation"
	"github.com/samber/lo"
)

const defaultResultsPerPage = 20

type SearchRequest struct {
	Query     string `form:"query" validate:"valid_query,max=1000"`
	PerPage   int    `form:"per_page" validate:"min=0,max=100"`
	Page      int    `form:"page" validate:"min=0,max=100000"`
	Highlight bool   `form:"highlight"`
}

func (r *SearchRequest) setDefaults() {
	if r.PerPage == 0 {
		r.PerPage = defaultResultsPerPage
	}

	if r.Page == 0 {
		r.Page = 1
	}
}

// SearchResult is a query hit, optionally with its title and snippet rendered
// as escaped HTML with the matched text marked.
type SearchResult struct {
	search.Result
	HighlightedTitle   string `json:"highlighted_title,omitempty"`
	HighlightedSnippet string `json:"highlighted_snippet,omitempty"`
}

type SearchResponse struct {
	Results     []SearchResult `json:"results"`
	PageDetails Pagination     `json:"page_details"`
}

func SetupSearch(router *gin.Engine, logger logger.Logger, searchIndex *search.Index, validator *validation.Validator) {
	router.GET("/search", handleSearch(searchIndex, logger, validator))

}

func handleSearch(searchIndex *search.Index, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SearchRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request query parameters"})
			return
		}
		request.setDefaults()

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		limit := request.PerPage
		offset := (request.Page - 1) * request.PerPage
		results := searchIndex.Query(request.Query)

		page := lo.Map(lo.Slice(results, offset, offset+limit), func(result search.Result, _ int) SearchResult {
			searchResult := SearchResult{Result: result}
			if request.Highlight {
				searchResult.HighlightedTitle = textsafe.RenderHighlight(textsafe.HighlightText(result.Title, request.Query))
				searchResult.HighlightedSnippet = textsafe.RenderHighlight(textsafe.HighlightText(result.Snippet, request.Query))
			}
			return searchResult
		})

		searchResponse := SearchResponse{
			Results:     page,
			PageDetails: calculatePagination(len(results), limit, offset),
		}

		writeResponse(c, searchResponse, http.StatusOK, nil)
	}
}
