package index

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/meghashyamc/docsearch/services/search"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const maxPageSize = 10 * 1024 * 1024 // 10MB limit

var frontMatterDelimiter = []byte("---")

type frontMatter struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Slug     string `yaml:"slug"`
}

// isPageFile reports whether path is a Markdown page the pipeline indexes.
func isPageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

func isDocumentListFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

// Discover reads search documents from a JSON document list or from a
// directory tree of Markdown pages.
func (s *Service) Discover(contentPath string) ([]search.Document, error) {
	info, err := os.Stat(contentPath)
	if err != nil {
		s.logger.Error("could not stat content path", "path", contentPath, "err", err.Error())
		return nil, fmt.Errorf("could not stat content path: %w", err)
	}

	if !info.IsDir() {
		if !isDocumentListFile(contentPath) {
			return nil, fmt.Errorf("content file must be a .json document list: %s", contentPath)
		}
		return s.readDocumentList(contentPath)
	}

	return s.discoverPages(contentPath)
}

func (s *Service) readDocumentList(listPath string) ([]search.Document, error) {
	data, err := os.ReadFile(listPath)
	if err != nil {
		s.logger.Error("could not read document list", "path", listPath, "err", err.Error())
		return nil, fmt.Errorf("could not read document list: %w", err)
	}

	documents := make([]search.Document, 0)
	if err := json.Unmarshal(data, &documents); err != nil {
		s.logger.Error("could not decode document list", "path", listPath, "err", err.Error())
		return nil, fmt.Errorf("could not decode document list %s: %w", listPath, err)
	}
	// a "null" list is an empty corpus, not a request for the defaults
	if documents == nil {
		documents = []search.Document{}
	}

	for i, document := range documents {
		if strings.TrimSpace(document.Title) == "" || strings.TrimSpace(document.URL) == "" {
			return nil, fmt.Errorf("document %d in %s needs a title and a url", i, listPath)
		}
	}

	return documents, nil
}

func (s *Service) discoverPages(rootPath string) ([]search.Document, error) {
	documents := make([]search.Document, 0)

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.logger.Error("could not walk through file or directory", "err", err.Error())
			if errors.Is(err, os.ErrPermission) {
				return nil
			}
			return err
		}

		// Skip directories that start with '.' but not the root directory
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != rootPath {
			return filepath.SkipDir
		}

		if info.IsDir() || strings.HasPrefix(info.Name(), ".") || !isPageFile(path) {
			return nil
		}

		if info.Size() > maxPageSize {
			s.logger.Warn("skipping oversized page", "path", path, "size", info.Size())
			return nil
		}

		document, err := s.readPage(rootPath, path)
		if err != nil {
			s.logger.Error("error processing page", "path", path, "err", err.Error())
			return nil
		}
		documents = append(documents, document)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].URL < documents[j].URL
	})
	s.logger.Info("discovered pages", "root", rootPath, "num_of_pages", len(documents))

	return documents, nil
}

func (s *Service) readPage(rootPath string, pagePath string) (search.Document, error) {
	data, err := os.ReadFile(pagePath)
	if err != nil {
		return search.Document{}, err
	}

	meta, body, err := splitFrontMatter(data)
	if err != nil {
		return search.Document{}, fmt.Errorf("invalid front matter: %w", err)
	}

	relPath, err := filepath.Rel(rootPath, pagePath)
	if err != nil {
		return search.Document{}, err
	}

	document := search.Document{
		Title: pageTitle(meta, body, relPath),
		URL:   pageURL(s.urlPrefix, relPath, meta.Slug),
	}
	if content := collapseWhitespace(body); content != "" {
		document.Content = lo.ToPtr(content)
	}
	if meta.Category != "" {
		document.Category = lo.ToPtr(meta.Category)
	}

	return document, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from the
// page body. Pages without one return an empty frontMatter.
func splitFrontMatter(data []byte) (frontMatter, string, error) {
	var meta frontMatter

	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), frontMatterDelimiter) {
		return meta, string(data), nil
	}

	for i := 1; i < len(lines); i++ {
		if !bytes.Equal(bytes.TrimSpace(lines[i]), frontMatterDelimiter) {
			continue
		}
		if err := yaml.Unmarshal(bytes.Join(lines[1:i], nil), &meta); err != nil {
			return meta, "", err
		}
		return meta, string(bytes.Join(lines[i+1:], nil)), nil
	}

	// an opening delimiter without a closing one is treated as body text
	return meta, string(data), nil
}

// pageTitle prefers the front matter title, then the first "# " heading,
// then the file name.
func pageTitle(meta frontMatter, body string, relPath string) string {
	if title := strings.TrimSpace(meta.Title); title != "" {
		return title
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			if heading := strings.TrimSpace(strings.TrimPrefix(line, "# ")); heading != "" {
				return heading
			}
		}
	}

	name := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	return strings.ReplaceAll(name, "-", " ")
}

// pageURL maps docs/tutorials/tdd.md to <prefix>/tutorials/tdd and
// index pages to their directory. A slug replaces the last path element.
func pageURL(urlPrefix string, relPath string, slug string) string {
	slashPath := filepath.ToSlash(strings.TrimSuffix(relPath, filepath.Ext(relPath)))

	dir, name := path.Split(slashPath)
	if name == "index" {
		name = ""
	}
	if slug = strings.Trim(slug, "/"); slug != "" {
		name = slug
	}

	joined := path.Join("/", urlPrefix, dir, name)
	return joined
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
