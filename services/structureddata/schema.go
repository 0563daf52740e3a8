// Package structureddata builds schema.org JSON-LD payloads for documentation
// pages. Every string that ends up in a payload is passed through
// textsafe.SanitizeForJSONLD, so the encoded payload can be embedded in a
// script element as-is.
package structureddata

import (
	"github.com/meghashyamc/docsearch/textsafe"
	"github.com/samber/lo"
)

const (
	schemaContext = "https://schema.org"

	searchTermPlaceholder = "{search_term_string}"
	searchQueryInput      = "required name=search_term_string"
)

type ArticleInput struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	DatePublished string `json:"date_published" validate:"required"`
	DateModified  string `json:"date_modified"`
	Author        string `json:"author" validate:"required"`
	Image         string `json:"image"`
	URL           string `json:"url"`
}

type HowToStepInput struct {
	Name  string `json:"name" validate:"required"`
	Text  string `json:"text" validate:"required"`
	Image string `json:"image"`
}

type HowToInput struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Steps       []HowToStepInput `json:"steps" validate:"required,min=1,dive"`
	TotalTime   string           `json:"total_time"`
	Image       string           `json:"image"`
}

type WebsiteInput struct {
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Description string `json:"description" validate:"required"`
	SearchURL   string `json:"search_url"`
}

type ArticleSchema struct {
	Context          string  `json:"@context"`
	Type             string  `json:"@type"`
	Headline         string  `json:"headline"`
	Description      string  `json:"description"`
	DatePublished    string  `json:"datePublished"`
	DateModified     string  `json:"dateModified"`
	Author           Person  `json:"author"`
	Image            string  `json:"image,omitempty"`
	MainEntityOfPage WebPage `json:"mainEntityOfPage"`
}

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type WebPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id,omitempty"`
}

type HowToSchema struct {
	Context     string      `json:"@context"`
	Type        string      `json:"@type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	TotalTime   string      `json:"totalTime,omitempty"`
	Image       string      `json:"image,omitempty"`
	Step        []HowToStep `json:"step"`
}

type HowToStep struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	Image    string `json:"image,omitempty"`
}

type WebsiteSchema struct {
	Context         string       `json:"@context"`
	Type            string       `json:"@type"`
	Name            string       `json:"name"`
	URL             string       `json:"url"`
	Description     string       `json:"description"`
	PotentialAction SearchAction `json:"potentialAction"`
}

type SearchAction struct {
	Type       string     `json:"@type"`
	Target     EntryPoint `json:"target"`
	QueryInput string     `json:"query-input"`
}

type EntryPoint struct {
	Type        string `json:"@type"`
	URLTemplate string `json:"urlTemplate"`
}

// Article builds an Article schema. DateModified falls back to DatePublished.
func Article(input ArticleInput) ArticleSchema {
	dateModified := input.DateModified
	if dateModified == "" {
		dateModified = input.DatePublished
	}

	return ArticleSchema{
		Context:       schemaContext,
		Type:          "Article",
		Headline:      safe(input.Title),
		Description:   safe(input.Description),
		DatePublished: safe(input.DatePublished),
		DateModified:  safe(dateModified),
		Author: Person{
			Type: "Person",
			Name: safe(input.Author),
		},
		Image: safe(input.Image),
		MainEntityOfPage: WebPage{
			Type: "WebPage",
			ID:   safe(input.URL),
		},
	}
}

// HowTo builds a HowTo schema with steps numbered from 1.
func HowTo(input HowToInput) HowToSchema {
	return HowToSchema{
		Context:     schemaContext,
		Type:        "HowTo",
		Name:        safe(input.Name),
		Description: safe(input.Description),
		TotalTime:   safe(input.TotalTime),
		Image:       safe(input.Image),
		Step: lo.Map(input.Steps, func(step HowToStepInput, i int) HowToStep {
			return HowToStep{
				Type:     "HowToStep",
				Position: i + 1,
				Name:     safe(step.Name),
				Text:     safe(step.Text),
				Image:    safe(step.Image),
			}
		}),
	}
}

// Website builds a WebSite schema whose search action points at SearchURL, or
// at URL + "/search" when SearchURL is empty.
func Website(input WebsiteInput) WebsiteSchema {
	searchURL := input.SearchURL
	if searchURL == "" {
		searchURL = input.URL + "/search"
	}

	return WebsiteSchema{
		Context:     schemaContext,
		Type:        "WebSite",
		Name:        safe(input.Name),
		URL:         safe(input.URL),
		Description: safe(input.Description),
		PotentialAction: SearchAction{
			Type: "SearchAction",
			Target: EntryPoint{
				Type:        "EntryPoint",
				URLTemplate: safe(searchURL + "?q=" + searchTermPlaceholder),
			},
			QueryInput: searchQueryInput,
		},
	}
}

func safe(s string) string {
	return textsafe.SanitizeForJSONLD(s)
}
