package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docsearch/logger"
	"github.com/meghashyamc/docsearch/services/search"
)

type DocumentsResponse struct {
	Documents []search.Document `json:"documents"`
}

func SetupDocuments(router *gin.Engine, logger logger.Logger, searchIndex *search.Index) {
	router.GET("/documents", handleGetDocuments(searchIndex, logger))
}

func handleGetDocuments(searchIndex *search.Index, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		documents := searchIndex.GetAll()
		logger.Debug("listing documents", "count", len(documents))
		writeResponse(c, DocumentsResponse{Documents: documents}, http.StatusOK, nil)
	}
}
