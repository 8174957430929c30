package corpusdna

import (
	"context"

	"github.com/textlabs/CorpusDNA/pkg/models"
)

type Service interface {
	AddCorpus(ctx context.Context, label, source string, tokens []string) (string, error)
	Compare(ctx context.Context, corpusA, corpusB string, topK int) (*models.ComparisonResult, error)
	CompareTokens(ctx context.Context, tokensA, tokensB []string, topK int) (*models.ComparisonResult, error)
	GetCorpusByID(corpusID string) (*models.Corpus, error)
	ListCorpora() ([]models.Corpus, error)
	DeleteCorpus(corpusID string) error
	Close() error
}

type Storage interface {
	RegisterCorpus(label, source string, tokenCount int) (string, error)
	StoreTokens(corpusID string, tokens []string) error
	LoadTokens(corpusID string) ([]string, error)
	GetCorpusByID(corpusID string) (*models.Corpus, error)
	GetTokenCount(corpusID string) (int, error)
	ListCorpora() ([]models.Corpus, error)
	DeleteCorpusByID(corpusID string) error
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
