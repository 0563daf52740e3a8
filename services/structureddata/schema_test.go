package structureddata

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArticle(t *testing.T) {
	assert := require.New(t)

	schema := Article(ArticleInput{
		Title:         "TDD Masterclass",
		Description:   "Red, green, refactor",
		DatePublished: "2024-01-01",
		Author:        "ECC Team",
		URL:           "/docs/tutorials/tdd-masterclass",
	})

	assert.Equal("https://schema.org", schema.Context)
	assert.Equal("Article", schema.Type)
	assert.Equal("TDD Masterclass", schema.Headline)
	assert.Equal("2024-01-01", schema.DateModified, "date modified should default to date published")
	assert.Equal(Person{Type: "Person", Name: "ECC Team"}, schema.Author)
	assert.Equal(WebPage{Type: "WebPage", ID: "/docs/tutorials/tdd-masterclass"}, schema.MainEntityOfPage)

	withModified := Article(ArticleInput{Title: "t", DatePublished: "2024-01-01", DateModified: "2024-02-01"})
	assert.Equal("2024-02-01", withModified.DateModified)
}

func TestArticleOmitsEmptyOptionalFields(t *testing.T) {
	assert := require.New(t)

	payload, err := Encode(Article(ArticleInput{Title: "t", Description: "d", DatePublished: "2024-01-01", Author: "a"}))
	assert.NoError(err)

	var decoded map[string]any
	assert.NoError(json.Unmarshal([]byte(payload), &decoded))
	assert.NotContains(decoded, "image")
	assert.Equal(map[string]any{"@type": "WebPage"}, decoded["mainEntityOfPage"])
}

func TestArticleSanitizesScriptClose(t *testing.T) {
	assert := require.New(t)

	schema := Article(ArticleInput{
		Title:         "Test</script><script>alert(1)</script>",
		Description:   "Normal description",
		DatePublished: "2024-01-01",
		Author:        "</script>ECC Team",
	})
	assert.NotContains(schema.Headline, "</")
	assert.NotContains(schema.Author.Name, "</")

	script, err := Script(schema)
	assert.NoError(err)
	assert.True(strings.HasPrefix(script, `<script type="application/ld+json">`))
	assert.True(strings.HasSuffix(script, "</script>"))
	assert.Equal(1, strings.Count(script, "</script>"), "only the closing tag may contain </script>")

	payload := strings.TrimSuffix(strings.TrimPrefix(script, scriptOpen), scriptClose)
	assert.NotContains(payload, "</")
}

func TestHowTo(t *testing.T) {
	assert := require.New(t)

	schema := HowTo(HowToInput{
		Name:        "Install hooks",
		Description: "Set up automation hooks",
		TotalTime:   "PT5M",
		Steps: []HowToStepInput{
			{Name: "Install", Text: "Run the installer"},
			{Name: "Configure", Text: "Edit </script> settings", Image: "/img/step.png"},
		},
	})

	assert.Equal("HowTo", schema.Type)
	assert.Equal("PT5M", schema.TotalTime)
	assert.Len(schema.Step, 2)
	assert.Equal(HowToStep{Type: "HowToStep", Position: 1, Name: "Install", Text: "Run the installer"}, schema.Step[0])
	assert.Equal(2, schema.Step[1].Position)
	assert.Equal(`Edit <\/script> settings`, schema.Step[1].Text)
	assert.Equal("/img/step.png", schema.Step[1].Image)
}

func TestWebsite(t *testing.T) {
	assert := require.New(t)

	schema := Website(WebsiteInput{Name: "ECC", URL: "https://ecc.example", Description: "Docs"})
	assert.Equal("WebSite", schema.Type)
	assert.Equal("SearchAction", schema.PotentialAction.Type)
	assert.Equal("https://ecc.example/search?q={search_term_string}", schema.PotentialAction.Target.URLTemplate)
	assert.Equal("required name=search_term_string", schema.PotentialAction.QueryInput)

	custom := Website(WebsiteInput{Name: "ECC", URL: "https://ecc.example", SearchURL: "https://ecc.example/find"})
	assert.Equal("https://ecc.example/find?q={search_term_string}", custom.PotentialAction.Target.URLTemplate)

	payload, err := Encode(schema)
	assert.NoError(err)
	assert.Contains(payload, `"query-input":"required name=search_term_string"`)
	assert.Contains(payload, `"@context":"https://schema.org"`)
}
