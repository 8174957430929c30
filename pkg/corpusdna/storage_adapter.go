package corpusdna

import (
	"github.com/textlabs/CorpusDNA/pkg/corpusdna/storage"
	"github.com/textlabs/CorpusDNA/pkg/models"
)

// storageAdapter adapts the storage.DBClient to the Storage interface.
type storageAdapter struct {
	db *storage.DBClient
}

// NewSQLiteStorage creates a new SQLite storage backend.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	db, err := storage.NewDBClientWithPath(dbPath)
	if err != nil {
		return nil, err
	}
	return &storageAdapter{db: db}, nil
}

func (s *storageAdapter) RegisterCorpus(label, source string, tokenCount int) (string, error) {
	return s.db.RegisterCorpus(label, source, tokenCount)
}

func (s *storageAdapter) StoreTokens(corpusID string, tokens []string) error {
	return s.db.StoreTokens(corpusID, tokens)
}

func (s *storageAdapter) LoadTokens(corpusID string) ([]string, error) {
	return s.db.LoadTokens(corpusID)
}

func (s *storageAdapter) GetCorpusByID(corpusID string) (*models.Corpus, error) {
	return s.db.GetCorpusByID(corpusID)
}

func (s *storageAdapter) GetTokenCount(corpusID string) (int, error) {
	return s.db.GetTokenCount(corpusID)
}

func (s *storageAdapter) ListCorpora() ([]models.Corpus, error) {
	return s.db.ListCorpora()
}

func (s *storageAdapter) DeleteCorpusByID(corpusID string) error {
	return s.db.DeleteCorpusByID(corpusID)
}

func (s *storageAdapter) Close() error {
	return s.db.Close()
}
