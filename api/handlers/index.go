package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docsearch/db/kvdb"
	"github.com/meghashyamc/docsearch/logger"
	"github.com/meghashyamc/docsearch/services/index"
	"github.com/meghashyamc/docsearch/services/search"
	"github.com/meghashyamc/docsearch/validation"
	"github.com/samber/lo"
)

var errIndexSource = errors.New("exactly one of 'path' or 'documents' must be provided")

type DocumentRequest struct {
	Title    string  `json:"title" validate:"required"`
	URL      string  `json:"url" validate:"required,valid_doc_url"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// IndexRequest replaces the corpus either from a content path on the server
// or from the documents in the body. An empty documents list clears it.
type IndexRequest struct {
	Path      string            `json:"path" validate:"omitempty,valid_path"`
	Documents []DocumentRequest `json:"documents" validate:"omitempty,dive"`
}

func (r *IndexRequest) hasSingleSource() bool {
	return (r.Path != "") != (r.Documents != nil)
}

func (r *IndexRequest) documents() []search.Document {
	return lo.Map(r.Documents, func(document DocumentRequest, _ int) search.Document {
		return search.Document{
			Title:    document.Title,
			URL:      document.URL,
			Content:  document.Content,
			Category: document.Category,
		}
	})
}

type IndexHistoryResponse struct {
	Rebuilds []index.RebuildRecord `json:"rebuilds"`
}

func SetupIndex(router *gin.Engine, logger logger.Logger, indexService *index.Service, validator *validation.Validator) {
	router.POST("/index", handleIndex(indexService, logger, validator))
	router.GET("/index", handleGetIndexHistory(indexService, logger))
	router.GET("/index/:id", handleGetIndexStatus(indexService, logger))

}

func handleIndex(indexService *index.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := IndexRequest{}
		if err := c.ShouldBindJSON(&request); err != nil {
			logger.Warn("could not extract expected params from index request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate index request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		if !request.hasSingleSource() {
			logger.Warn("could not validate index request", "err", errIndexSource.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{errIndexSource.Error()})
			return
		}

		var record *index.RebuildRecord
		var err error
		if request.Path != "" {
			record, err = indexService.RebuildFrom(request.Path)
		} else {
			record, err = indexService.Rebuild(index.SourceRequest, request.documents())
		}
		if err != nil {
			logger.Error("could not rebuild index", "err", err.Error())
			c.Abort()
			writeResponse(c, record, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, record, http.StatusOK, nil)
	}
}

func handleGetIndexHistory(indexService *index.Service, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := indexService.History()
		if err != nil {
			logger.Error("could not read rebuild history", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, IndexHistoryResponse{Rebuilds: records}, http.StatusOK, nil)
	}
}

func handleGetIndexStatus(indexService *index.Service, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("id")
		record, err := indexService.GetStatus(requestID)
		if errors.Is(err, kvdb.ErrNotFound) || errors.Is(err, kvdb.ErrInvalidKey) {
			logger.Info("rebuild record not found", "request_id", requestID)
			c.Abort()
			writeResponse(c, nil, http.StatusNotFound, []string{"rebuild not found"})
			return
		}
		if err != nil {
			logger.Error("could not read rebuild record", "request_id", requestID, "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, record, http.StatusOK, nil)
	}
}
