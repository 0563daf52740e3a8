package search

import "github.com/samber/lo"

// Document is a unit of searchable content supplied by the content pipeline.
type Document struct {
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
}

// Result is a single query hit. Score is only comparable within one query.
type Result struct {
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Snippet  string  `json:"snippet"`
	Score    float64 `json:"score"`
	Category *string `json:"category,omitempty"`
}

func (d Document) contentOrEmpty() string {
	return lo.FromPtr(d.Content)
}

// clone returns a copy that shares no pointers with d.
func (d Document) clone() Document {
	copied := Document{Title: d.Title, URL: d.URL}
	if d.Content != nil {
		copied.Content = lo.ToPtr(*d.Content)
	}
	if d.Category != nil {
		copied.Category = lo.ToPtr(*d.Category)
	}
	return copied
}

func cloneDocuments(documents []Document) []Document {
	return lo.Map(documents, func(document Document, _ int) Document {
		return document.clone()
	})
}
