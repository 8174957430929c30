package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/textlabs/CorpusDNA/pkg/models"
	"github.com/textlabs/CorpusDNA/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultDBFile = "corpusdna.sqlite3"
const errDBClientNil = "db client is nil"

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

type Corpus struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Label      string `gorm:"uniqueIndex:idx_corpus_label" json:"label"`
	Source     string `json:"source"`
	TokenCount int    `json:"token_count"`
	CreatedAt  time.Time
}

type Token struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	CorpusID string `gorm:"type:varchar(36);index:idx_corpus_position,priority:1" json:"corpus_id"`
	Position int    `gorm:"index:idx_corpus_position,priority:2" json:"position"`
	Word     string `json:"word"`
}

func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("CORPUS_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !os.IsExist(err) {
		if filepath.Dir(dbPath) != "." {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Corpus{}, &Token{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// RegisterCorpus creates a corpus row and returns its ID. Registering an
// existing label returns the existing ID, filling in a missing Source.
func (c *DBClient) RegisterCorpus(label, source string, tokenCount int) (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New(errDBClientNil)
	}

	var corpus Corpus

	err := c.DB.Where("label = ?", label).First(&corpus).Error
	if err == nil {
		if corpus.Source == "" && source != "" {
			if err := c.DB.Model(&corpus).Update("Source", source).Error; err != nil {
				return "", fmt.Errorf("updating source: %w", err)
			}
			corpus.Source = source
		}
		return corpus.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("querying existing corpus: %w", err)
	}

	corpus = Corpus{ID: utils.GenerateUUID(), Label: label, Source: source, TokenCount: tokenCount}
	err = c.DB.Create(&corpus).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "constraint failed") {
			if fetchErr := c.DB.Where("label = ?", label).First(&corpus).Error; fetchErr != nil {
				return "", fmt.Errorf("fetching corpus after constraint violation: %w", fetchErr)
			}
			return corpus.ID, nil
		}
		return "", fmt.Errorf("creating corpus: %w", err)
	}

	return corpus.ID, nil
}

// StoreTokens persists a corpus's token sequence as position-ordered rows.
func (c *DBClient) StoreTokens(corpusID string, tokens []string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}

	entries := make([]Token, 0, 1024)
	for position, word := range tokens {
		entries = append(entries, Token{
			CorpusID: corpusID,
			Position: position,
			Word:     word,
		})
		if len(entries) >= 1000 {
			if err := c.DB.CreateInBatches(entries, 500).Error; err != nil {
				return fmt.Errorf("batch insert tokens: %w", err)
			}
			entries = entries[:0]
		}
	}
	if len(entries) > 0 {
		if err := c.DB.CreateInBatches(entries, 500).Error; err != nil {
			return fmt.Errorf("batch insert last tokens: %w", err)
		}
	}
	return nil
}

// LoadTokens returns a corpus's token sequence in original document order.
func (c *DBClient) LoadTokens(corpusID string) ([]string, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var rows []Token
	if err := c.DB.Where("corpus_id = ?", corpusID).Order("position asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying tokens: %w", err)
	}
	tokens := make([]string, 0, len(rows))
	for _, r := range rows {
		tokens = append(tokens, r.Word)
	}
	return tokens, nil
}

func (c *DBClient) GetCorpusByID(corpusID string) (*models.Corpus, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var corpus Corpus
	if err := c.DB.Where("id = ?", corpusID).First(&corpus).Error; err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	return &models.Corpus{
		ID:         corpus.ID,
		Label:      corpus.Label,
		Source:     corpus.Source,
		TokenCount: corpus.TokenCount,
		CreatedAt:  corpus.CreatedAt,
	}, nil
}

func (c *DBClient) GetTokenCount(corpusID string) (int, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New(errDBClientNil)
	}
	var count int64
	if err := c.DB.Model(&Token{}).Where("corpus_id = ?", corpusID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting tokens: %w", err)
	}
	return int(count), nil
}

func (c *DBClient) ListCorpora() ([]models.Corpus, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var rows []Corpus
	if err := c.DB.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing corpora: %w", err)
	}
	out := make([]models.Corpus, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Corpus{
			ID:         r.ID,
			Label:      r.Label,
			Source:     r.Source,
			TokenCount: r.TokenCount,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out, nil
}

// DeleteCorpusByID removes a corpus and all of its tokens atomically.
func (c *DBClient) DeleteCorpusByID(corpusID string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("corpus_id = ?", corpusID).Delete(&Token{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", corpusID).Delete(&Corpus{}).Error; err != nil {
			return err
		}
		return nil
	})
}
