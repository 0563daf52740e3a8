package index

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/meghashyamc/docsearch/config"
	"github.com/meghashyamc/docsearch/db/kvdb"
	"github.com/meghashyamc/docsearch/logger"
	"github.com/meghashyamc/docsearch/services/search"
	"github.com/stretchr/testify/require"
)

var testPages = map[string]string{
	"quick-start.md":            "---\ntitle: Getting Started\ncategory: Quick Start\n---\n\n# Getting Started\n\nLearn how to get started.\nInstallation   and setup.\n",
	"core-concepts/index.md":    "# Core Concepts\n\nAgents, commands and hooks.",
	"core-concepts/hooks.mdx":   "---\ncategory: Core Concepts\n---\n# Hooks\nAutomation hooks for tools.",
	"tutorials/tdd-guide.md":    "---\ntitle: TDD Guide\nslug: tdd-masterclass\n---\nRed, green, refactor.",
	"tutorials/empty-page.md":   "",
	"tutorials/notes.txt":       "not a page",
	".drafts/secret.md":         "# Secret draft",
	"tutorials/.hidden-page.md": "# Hidden",
}

func newTestLogger() logger.Logger {

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func writeTestFiles(assert *require.Assertions, rootPath string, files map[string]string) {
	for relPath, content := range files {
		fullPath := filepath.Join(rootPath, relPath)
		err := os.MkdirAll(filepath.Dir(fullPath), 0755)
		assert.NoError(err, "could not create test sub-directory")
		err = os.WriteFile(fullPath, []byte(content), 0644)
		assert.NoError(err, "could not write test file")
	}
}

func setupTestService(t *testing.T, assert *require.Assertions) (*Service, *search.Index) {
	t.Setenv("KVDB_PATH", filepath.Join(t.TempDir(), "kvdb.db"))

	cfg, err := config.Load("test")
	assert.NoError(err, "could not load config")

	testLogger := newTestLogger()
	kvDB, err := kvdb.New(testLogger, cfg)
	assert.NoError(err, "could not create kv database")
	t.Cleanup(func() {
		assert.NoError(kvDB.Close(), "could not close kv database")
	})

	searchIndex := search.New(testLogger, nil)

	return New(testLogger, searchIndex, kvDB, cfg.GetContentURLPrefix(), cfg.GetHistoryMaxRecords()), searchIndex
}
