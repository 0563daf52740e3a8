package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docsearch/logger"
	"github.com/meghashyamc/docsearch/services/structureddata"
	"github.com/meghashyamc/docsearch/validation"
)

const (
	schemaTypeArticle = "article"
	schemaTypeHowTo   = "howto"
	schemaTypeWebsite = "website"

	metaTypeOpenGraph = "opengraph"
	metaTypeTwitter   = "twitter"
)

type StructuredDataTypeRequest struct {
	Type string `uri:"type" validate:"required,oneof=article howto website"`
}

type StructuredDataResponse struct {
	JSONLD json.RawMessage `json:"json_ld"`
	Script string          `json:"script"`
}

type MetaTypeRequest struct {
	Type string `uri:"type" validate:"required,oneof=opengraph twitter"`
}

type MetaResponse struct {
	Tags     any                      `json:"tags"`
	MetaTags []structureddata.MetaTag `json:"meta_tags"`
	HTML     string                   `json:"html"`
}

func SetupStructuredData(router *gin.Engine, logger logger.Logger, validator *validation.Validator) {
	router.POST("/structured-data/:type", handleStructuredData(logger, validator))
	router.POST("/meta/:type", handleMeta(logger, validator))
}

func handleStructuredData(logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		typeRequest := StructuredDataTypeRequest{}
		if err := c.ShouldBindUri(&typeRequest); err != nil {
			logger.Warn("could not extract schema type from structured data request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request path parameters"})
			return
		}
		if err := validator.Validate(typeRequest); err != nil {
			logger.Warn("could not validate structured data request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		var input any
		switch typeRequest.Type {
		case schemaTypeArticle:
			input = &structureddata.ArticleInput{}
		case schemaTypeHowTo:
			input = &structureddata.HowToInput{}
		case schemaTypeWebsite:
			input = &structureddata.WebsiteInput{}
		}

		if err := c.ShouldBindJSON(input); err != nil {
			logger.Warn("could not extract expected params from structured data request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}
		if err := validator.Validate(input); err != nil {
			logger.Warn("could not validate structured data request", "type", typeRequest.Type, "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		var schema any
		switch in := input.(type) {
		case *structureddata.ArticleInput:
			schema = structureddata.Article(*in)
		case *structureddata.HowToInput:
			schema = structureddata.HowTo(*in)
		case *structureddata.WebsiteInput:
			schema = structureddata.Website(*in)
		}

		jsonLD, err := structureddata.Encode(schema)
		if err != nil {
			logger.Error("could not encode structured data", "type", typeRequest.Type, "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}
		script, err := structureddata.Script(schema)
		if err != nil {
			logger.Error("could not render structured data script", "type", typeRequest.Type, "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, StructuredDataResponse{JSONLD: json.RawMessage(jsonLD), Script: script}, http.StatusOK, nil)
	}
}

func handleMeta(logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		typeRequest := MetaTypeRequest{}
		if err := c.ShouldBindUri(&typeRequest); err != nil {
			logger.Warn("could not extract meta type from meta request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request path parameters"})
			return
		}
		if err := validator.Validate(typeRequest); err != nil {
			logger.Warn("could not validate meta request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		var input any
		switch typeRequest.Type {
		case metaTypeOpenGraph:
			input = &structureddata.OpenGraphInput{}
		case metaTypeTwitter:
			input = &structureddata.TwitterCardInput{}
		}

		if err := c.ShouldBindJSON(input); err != nil {
			logger.Warn("could not extract expected params from meta request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
			return
		}
		if err := validator.Validate(input); err != nil {
			logger.Warn("could not validate meta request", "type", typeRequest.Type, "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		var response MetaResponse
		switch in := input.(type) {
		case *structureddata.OpenGraphInput:
			tags := structureddata.OpenGraph(*in)
			response = MetaResponse{Tags: tags, MetaTags: tags.MetaTags()}
		case *structureddata.TwitterCardInput:
			tags := structureddata.TwitterCard(*in)
			response = MetaResponse{Tags: tags, MetaTags: tags.MetaTags()}
		}
		response.HTML = structureddata.RenderMetaTags(response.MetaTags)

		writeResponse(c, response, http.StatusOK, nil)
	}
}
