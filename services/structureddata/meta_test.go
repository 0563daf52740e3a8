package structureddata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var openGraphTestCases = []struct {
	name     string
	input    OpenGraphInput
	expected OpenGraphTags
}{
	{
		name:  "Defaults",
		input: OpenGraphInput{Title: "Hooks", Description: "About hooks"},
		expected: OpenGraphTags{
			Title:       "Hooks",
			Description: "About hooks",
			Image:       "/img/og-default.png",
			URL:         "",
			Type:        "website",
		},
	},
	{
		name: "PageURLResolvedAgainstBase",
		input: OpenGraphInput{
			Title:       "Hooks",
			Description: "About hooks",
			Image:       "/img/hooks.png",
			URL:         "/docs/core-concepts/hooks",
			BaseURL:     "https://docs.example.com",
			Type:        "article",
		},
		expected: OpenGraphTags{
			Title:       "Hooks",
			Description: "About hooks",
			Image:       "/img/hooks.png",
			URL:         "https://docs.example.com/docs/core-concepts/hooks",
			Type:        "article",
		},
	},
	{
		name:  "BaseURLWithoutPage",
		input: OpenGraphInput{Title: "Docs", Description: "Home", BaseURL: "https://docs.example.com"},
		expected: OpenGraphTags{
			Title:       "Docs",
			Description: "Home",
			Image:       "/img/og-default.png",
			URL:         "https://docs.example.com",
			Type:        "website",
		},
	},
}

func TestOpenGraph(t *testing.T) {
	for _, testCase := range openGraphTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			assert.Equal(testCase.expected, OpenGraph(testCase.input))
		})
	}
}

var twitterCardTestCases = []struct {
	name     string
	input    TwitterCardInput
	expected TwitterCardTags
}{
	{
		name:  "Defaults",
		input: TwitterCardInput{Title: "Hooks", Description: "About hooks"},
		expected: TwitterCardTags{
			Card:        "summary_large_image",
			Title:       "Hooks",
			Description: "About hooks",
			Image:       "/img/twitter-default.png",
		},
	},
	{
		name:  "CustomImage",
		input: TwitterCardInput{Title: "Hooks", Description: "About hooks", Image: "/img/hooks.png", URL: "/docs/hooks", BaseURL: "https://docs.example.com"},
		expected: TwitterCardTags{
			Card:        "summary_large_image",
			Title:       "Hooks",
			Description: "About hooks",
			Image:       "/img/hooks.png",
			URL:         "https://docs.example.com/docs/hooks",
		},
	},
}

func TestTwitterCard(t *testing.T) {
	for _, testCase := range twitterCardTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			assert.Equal(testCase.expected, TwitterCard(testCase.input))
		})
	}
}

func TestRenderMetaTags(t *testing.T) {
	assert := require.New(t)

	rendered := RenderMetaTags(OpenGraph(OpenGraphInput{Title: `"><script>alert(1)</script>`, Description: "a & b"}).MetaTags())
	lines := strings.Split(rendered, "\n")
	assert.Len(lines, 5)
	assert.Equal(`<meta property="og:type" content="website" />`, lines[0])
	assert.Equal(`<meta property="og:title" content="&quot;&gt;&lt;script&gt;alert(1)&lt;/script&gt;" />`, lines[2])
	assert.Equal(`<meta property="og:description" content="a &amp; b" />`, lines[3])
	assert.NotContains(rendered, "<script")
}
