package index

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/meghashyamc/docsearch/db/kvdb"
	"github.com/meghashyamc/docsearch/logger"
	"github.com/meghashyamc/docsearch/services/search"
)

// Rebuilder is the part of the search index the rebuild service drives.
type Rebuilder interface {
	Rebuild(documents []search.Document) []search.Document
}

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"

	// SourceRequest marks documents supplied directly by an API caller.
	SourceRequest = "request"
)

// RebuildRecord describes one replacement of the search corpus.
type RebuildRecord struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Status        string    `json:"status"`
	DocumentCount int       `json:"document_count"`
	Error         string    `json:"error,omitempty"`
	RebuiltAt     time.Time `json:"rebuilt_at"`
}

type Service struct {
	logger        logger.Logger
	index         Rebuilder
	metadataStore MetadataStore
	urlPrefix     string
	maxRecords    int
}

// New creates a rebuild service. Only the newest maxRecords rebuild records are
// kept; zero or less keeps them all.
func New(logger logger.Logger, index Rebuilder, metadataStore MetadataStore, urlPrefix string, maxRecords int) *Service {
	return &Service{
		logger:        logger,
		index:         index,
		metadataStore: metadataStore,
		urlPrefix:     urlPrefix,
		maxRecords:    maxRecords,
	}
}

// Rebuild replaces the search corpus with documents and records the rebuild.
func (s *Service) Rebuild(source string, documents []search.Document) (*RebuildRecord, error) {
	if documents == nil {
		documents = []search.Document{}
	}

	indexed := s.index.Rebuild(documents)

	record := &RebuildRecord{
		ID:            uuid.New().String(),
		Source:        source,
		Status:        StatusCompleted,
		DocumentCount: len(indexed),
		RebuiltAt:     time.Now().UTC(),
	}
	if err := s.saveRecord(record); err != nil {
		return record, err
	}

	s.logger.Info("rebuilt search index", "request_id", record.ID, "source", source, "documents", record.DocumentCount)

	return record, nil
}

// RebuildFrom discovers documents under contentPath and rebuilds the index
// from them. A failed discovery leaves the index untouched and is recorded.
func (s *Service) RebuildFrom(contentPath string) (*RebuildRecord, error) {
	documents, err := s.Discover(contentPath)
	if err != nil {
		record := &RebuildRecord{
			ID:        uuid.New().String(),
			Source:    contentPath,
			Status:    StatusFailed,
			Error:     err.Error(),
			RebuiltAt: time.Now().UTC(),
		}
		if saveErr := s.saveRecord(record); saveErr != nil {
			s.logger.Error("failed to record failed rebuild", "request_id", record.ID, "err", saveErr.Error())
		}
		s.logger.Error("failed to rebuild index", "request_id", record.ID, "path", contentPath, "err", err.Error())
		return record, fmt.Errorf("failed to discover documents: %w", err)
	}

	return s.Rebuild(contentPath, documents)
}

// GetStatus retrieves the record of a rebuild.
func (s *Service) GetStatus(requestID string) (*RebuildRecord, error) {
	value, err := s.metadataStore.Get(kvdb.RebuildsBucket, requestID)
	if err != nil {
		return nil, fmt.Errorf("request not found: %w", err)
	}

	var record RebuildRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		s.logger.Error("failed to unmarshal rebuild record", "request_id", requestID, "err", err.Error())
		return nil, fmt.Errorf("invalid rebuild record for %s: %w", requestID, err)
	}

	return &record, nil
}

// History returns every recorded rebuild, newest first.
func (s *Service) History() ([]RebuildRecord, error) {
	keys, err := s.metadataStore.GetAllKeys(kvdb.RebuildsBucket)
	if err != nil {
		s.logger.Error("failed to get all keys from database", "err", err.Error())
		return nil, fmt.Errorf("failed to get all keys from database: %w", err)
	}

	records := make([]RebuildRecord, 0, len(keys))
	for _, key := range keys {
		record, err := s.GetStatus(key)
		if err != nil {
			s.logger.Warn("skipping unreadable rebuild record", "request_id", key, "err", err.Error())
			continue
		}
		records = append(records, *record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RebuiltAt.After(records[j].RebuiltAt)
	})

	return records, nil
}

func (s *Service) saveRecord(record *RebuildRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Error("failed to marshal rebuild record", "request_id", record.ID, "err", err.Error())
		return fmt.Errorf("failed to marshal rebuild record %s: %w", record.ID, err)
	}

	if err := s.metadataStore.Set(kvdb.RebuildsBucket, record.ID, string(data)); err != nil {
		s.logger.Error("failed to save rebuild record", "request_id", record.ID, "err", err.Error())
		return err
	}

	s.pruneHistory()

	return nil
}

// pruneHistory deletes the oldest records beyond maxRecords. Failures are
// logged; a record left behind is dropped on a later rebuild.
func (s *Service) pruneHistory() {
	if s.maxRecords <= 0 {
		return
	}

	records, err := s.History()
	if err != nil || len(records) <= s.maxRecords {
		return
	}

	for _, record := range records[s.maxRecords:] {
		if err := s.metadataStore.Delete(kvdb.RebuildsBucket, record.ID); err != nil {
			s.logger.Warn("failed to prune rebuild record", "request_id", record.ID, "err", err.Error())
			continue
		}
		s.logger.Debug("pruned rebuild record", "request_id", record.ID)
	}
}
