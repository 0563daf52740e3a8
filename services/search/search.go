package search

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/meghashyamc/docsearch/logger"
	"github.com/samber/lo"
)

const (
	RelevanceThreshold = 0.3
	SnippetLength      = 150
	SnippetSuffix      = "..."

	titleWeight   = 2
	contentWeight = 1
)

// Index holds the active corpus. The corpus is only ever replaced as a whole,
// so readers always see one complete snapshot.
type Index struct {
	logger    logger.Logger
	documents atomic.Pointer[[]Document]
}

// New creates an index over a copy of documents, or over DefaultDocuments when
// documents is nil.
func New(logger logger.Logger, documents []Document) *Index {
	if documents == nil {
		documents = DefaultDocuments()
	}

	index := &Index{logger: logger}
	index.store(documents)

	return index
}

// Rebuild replaces the corpus with a copy of documents and returns a copy of
// the result. A nil slice leaves the corpus untouched; an empty non-nil slice
// clears it.
func (ix *Index) Rebuild(documents []Document) []Document {
	if documents != nil {
		ix.store(documents)
		ix.logger.Info("search index rebuilt", "documents", len(documents))
	}

	return ix.GetAll()
}

// GetAll returns a copy of the current corpus.
func (ix *Index) GetAll() []Document {
	return cloneDocuments(*ix.documents.Load())
}

// Query scores every document against query and returns the ones above
// RelevanceThreshold, best first.
func (ix *Index) Query(query string) []Result {
	if strings.TrimSpace(query) == "" {
		return []Result{}
	}

	documents := *ix.documents.Load()

	results := lo.FilterMap(documents, func(document Document, _ int) (Result, bool) {
		titleScore := fuzzyMatch(document.Title, query)
		contentScore := fuzzyMatch(document.contentOrEmpty(), query)
		combinedScore := (titleScore*titleWeight + contentScore*contentWeight) / (titleWeight + contentWeight)

		if combinedScore <= RelevanceThreshold {
			return Result{}, false
		}

		return Result{
			Title:    document.Title,
			URL:      document.URL,
			Snippet:  snippet(document.contentOrEmpty()),
			Score:    combinedScore,
			Category: document.clone().Category,
		}, true
	})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	ix.logger.Debug("search query scored", "query", query, "documents", len(documents), "results", len(results))

	return results
}

func (ix *Index) store(documents []Document) {
	owned := cloneDocuments(documents)
	ix.documents.Store(&owned)
}

// snippet keeps the first SnippetLength runes and always appends SnippetSuffix.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) > SnippetLength {
		runes = runes[:SnippetLength]
	}

	return string(runes) + SnippetSuffix
}
