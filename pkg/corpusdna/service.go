package corpusdna

import (
	"context"
	"fmt"

	"github.com/textlabs/CorpusDNA/pkg/corpusdna/keyness"
	"github.com/textlabs/CorpusDNA/pkg/logger"
	"github.com/textlabs/CorpusDNA/pkg/models"
)

// corpusService is the default implementation of the Service interface.
type corpusService struct {
	storage Storage
	log     Logger
	config  *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	// Set default logger if none provided
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	// Create or use provided storage
	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &corpusService{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
	}, nil
}

// AddCorpus registers a token sequence under a label and stores it for
// later comparisons.
func (s *corpusService) AddCorpus(ctx context.Context, label, source string, tokens []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if label == "" {
		return "", fmt.Errorf("corpus label is required")
	}
	if len(tokens) == 0 {
		return "", fmt.Errorf("corpus %q: %w", label, keyness.ErrEmptyCorpus)
	}

	s.log.Infof("Registering corpus %q (%d tokens)", label, len(tokens))

	corpusID, err := s.storage.RegisterCorpus(label, source, len(tokens))
	if err != nil {
		return "", fmt.Errorf("failed to register corpus: %w", err)
	}

	// Skip the token insert when the label was already registered with its
	// tokens in place.
	stored, err := s.storage.GetTokenCount(corpusID)
	if err != nil {
		return "", fmt.Errorf("failed to check stored tokens: %w", err)
	}
	if stored > 0 {
		s.log.Infof("Corpus %q already stored (ID=%s)", label, corpusID)
		return corpusID, nil
	}

	if err := s.storage.StoreTokens(corpusID, tokens); err != nil {
		s.storage.DeleteCorpusByID(corpusID) // Rollback
		return "", fmt.Errorf("failed to store tokens: %w", err)
	}

	s.log.Infof("Successfully added corpus ID=%s", corpusID)
	return corpusID, nil
}

// Compare runs the bursty keyness analysis on two registered corpora and
// returns the topK most significant words on each side. topK <= 0 returns
// the full ranked lists.
func (s *corpusService) Compare(ctx context.Context, corpusA, corpusB string, topK int) (*models.ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metaA, err := s.storage.GetCorpusByID(corpusA)
	if err != nil {
		return nil, fmt.Errorf("corpus A: %w", err)
	}
	metaB, err := s.storage.GetCorpusByID(corpusB)
	if err != nil {
		return nil, fmt.Errorf("corpus B: %w", err)
	}

	s.log.Infof("Comparing %q vs %q", metaA.Label, metaB.Label)

	tokensA, err := s.storage.LoadTokens(corpusA)
	if err != nil {
		return nil, fmt.Errorf("loading corpus A tokens: %w", err)
	}
	tokensB, err := s.storage.LoadTokens(corpusB)
	if err != nil {
		return nil, fmt.Errorf("loading corpus B tokens: %w", err)
	}

	result, err := s.analyze(tokensA, tokensB, topK)
	if err != nil {
		return nil, err
	}
	result.CorpusA = *metaA
	result.CorpusB = *metaB
	return result, nil
}

// CompareTokens runs the analysis directly on caller-supplied token
// sequences, bypassing storage.
func (s *corpusService) CompareTokens(ctx context.Context, tokensA, tokensB []string, topK int) (*models.ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.analyze(tokensA, tokensB, topK)
}

func (s *corpusService) analyze(tokensA, tokensB []string, topK int) (*models.ComparisonResult, error) {
	res, err := keyness.AnalyzeWithOptions(tokensA, tokensB, keyness.Options{
		ChunkLength: s.config.ChunkLength,
		Workers:     s.config.Workers,
		Tester:      s.config.Tester,
		Stopwords:   s.config.Stopwords,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	vocabSize := len(res.CharacteristicA) + len(res.CharacteristicB)
	s.log.Infof("Tested %d words (%d A-side, %d B-side, %d diagnostics)",
		vocabSize, len(res.CharacteristicA), len(res.CharacteristicB), len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		s.log.Warnf("Rank-sum test failed for word %q: %v", d.Word, d.Err)
	}

	if topK <= 0 {
		topK = -1
	}

	out := &models.ComparisonResult{
		ChunkLength:     s.config.ChunkLength,
		VocabularySize:  vocabSize,
		CharacteristicA: toModelScores(keyness.Top(res.CharacteristicA, topK)),
		CharacteristicB: toModelScores(keyness.Top(res.CharacteristicB, topK)),
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, models.WordDiagnostic{
			Word:   d.Word,
			Reason: d.Err.Error(),
		})
	}
	return out, nil
}

func toModelScores(scores []keyness.WordScore) []models.WordScore {
	out := make([]models.WordScore, len(scores))
	for i, sc := range scores {
		out[i] = models.WordScore{Word: sc.Word, PValue: sc.PValue, Diff: sc.Diff}
	}
	return out
}

// GetCorpusByID retrieves a corpus's metadata by its database ID.
func (s *corpusService) GetCorpusByID(corpusID string) (*models.Corpus, error) {
	return s.storage.GetCorpusByID(corpusID)
}

// ListCorpora returns all registered corpora.
func (s *corpusService) ListCorpora() ([]models.Corpus, error) {
	return s.storage.ListCorpora()
}

// DeleteCorpus removes a corpus and all of its tokens.
func (s *corpusService) DeleteCorpus(corpusID string) error {
	return s.storage.DeleteCorpusByID(corpusID)
}

// Close releases all resources held by the service.
func (s *corpusService) Close() error {
	return s.storage.Close()
}
