package structureddata

import (
	"fmt"
	"strings"

	"github.com/meghashyamc/docsearch/textsafe"
	"github.com/samber/lo"
)

const (
	defaultOpenGraphImage   = "/img/og-default.png"
	defaultTwitterCardImage = "/img/twitter-default.png"
	defaultOpenGraphType    = "website"
	twitterCardType         = "summary_large_image"
)

type OpenGraphInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	BaseURL     string `json:"base_url"`
	Type        string `json:"type" validate:"omitempty,oneof=website article"`
}

type TwitterCardInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
	URL         string `json:"url"`
	BaseURL     string `json:"base_url"`
}

type OpenGraphTags struct {
	Title       string `json:"og_title"`
	Description string `json:"og_description"`
	Image       string `json:"og_image"`
	URL         string `json:"og_url"`
	Type        string `json:"og_type"`
}

type TwitterCardTags struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
}

// MetaTag is one <meta property=... content=...> element.
type MetaTag struct {
	Property string `json:"property"`
	Content  string `json:"content"`
}

// OpenGraph builds Open Graph tags. The page URL is resolved against BaseURL.
func OpenGraph(input OpenGraphInput) OpenGraphTags {
	return OpenGraphTags{
		Title:       input.Title,
		Description: input.Description,
		Image:       lo.Ternary(input.Image != "", input.Image, defaultOpenGraphImage),
		URL:         input.BaseURL + input.URL,
		Type:        lo.Ternary(input.Type != "", input.Type, defaultOpenGraphType),
	}
}

// TwitterCard builds large-image Twitter card tags.
func TwitterCard(input TwitterCardInput) TwitterCardTags {
	return TwitterCardTags{
		Card:        twitterCardType,
		Title:       input.Title,
		Description: input.Description,
		Image:       lo.Ternary(input.Image != "", input.Image, defaultTwitterCardImage),
		URL:         input.BaseURL + input.URL,
	}
}

func (t OpenGraphTags) MetaTags() []MetaTag {
	return []MetaTag{
		{Property: "og:type", Content: t.Type},
		{Property: "og:url", Content: t.URL},
		{Property: "og:title", Content: t.Title},
		{Property: "og:description", Content: t.Description},
		{Property: "og:image", Content: t.Image},
	}
}

func (t TwitterCardTags) MetaTags() []MetaTag {
	return []MetaTag{
		{Property: "twitter:card", Content: t.Card},
		{Property: "twitter:url", Content: t.URL},
		{Property: "twitter:title", Content: t.Title},
		{Property: "twitter:description", Content: t.Description},
		{Property: "twitter:image", Content: t.Image},
	}
}

// RenderMetaTags renders one element per line with escaped attribute values.
func RenderMetaTags(tags []MetaTag) string {
	lines := lo.Map(tags, func(tag MetaTag, _ int) string {
		return fmt.Sprintf(`<meta property="%s" content="%s" />`, textsafe.SanitizeHTML(tag.Property), textsafe.SanitizeHTML(tag.Content))
	})

	return strings.Join(lines, "\n")
}
