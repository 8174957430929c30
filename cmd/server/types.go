package main

import (
	"fmt"

	"github.com/textlabs/CorpusDNA/pkg/models"
)

// Token limit constants for validation
const (
	// MaxTokensSoftLimit is the recommended maximum corpus size for
	// interactive requests (roughly a long book).
	MaxTokensSoftLimit = 500000

	// MaxTokensHardLimit is the absolute maximum accepted in one request.
	MaxTokensHardLimit = 2000000

	// TokenWarningThreshold triggers logging for large uploads
	TokenWarningThreshold = 250000
)

// AddCorpusRequest is the request body for POST /api/corpora
type AddCorpusRequest struct {
	Label  string   `json:"label"`
	Source string   `json:"source,omitempty"`
	Tokens []string `json:"tokens"`
}

// Validate checks if the request is valid
func (r *AddCorpusRequest) Validate() error {
	if r.Label == "" {
		return fmt.Errorf("label is required")
	}
	if len(r.Tokens) == 0 {
		return fmt.Errorf("tokens cannot be empty")
	}
	if len(r.Tokens) > MaxTokensHardLimit {
		return fmt.Errorf("too many tokens: %d (maximum: %d)", len(r.Tokens), MaxTokensHardLimit)
	}
	return nil
}

// AddCorpusResponse is the response for successful corpus registration
type AddCorpusResponse struct {
	Message    string `json:"message"`
	ID         string `json:"id"`
	Label      string `json:"label"`
	TokenCount int    `json:"token_count"`
}

// CompareRequest is the request body for POST /api/compare. Either both
// corpus references (ID or label) or both inline token lists must be set.
type CompareRequest struct {
	CorpusA string   `json:"corpus_a,omitempty"`
	CorpusB string   `json:"corpus_b,omitempty"`
	TokensA []string `json:"tokens_a,omitempty"`
	TokensB []string `json:"tokens_b,omitempty"`
	TopK    int      `json:"top_k,omitempty"`
}

// Validate checks if the request is valid
func (r *CompareRequest) Validate() error {
	byRef := r.CorpusA != "" && r.CorpusB != ""
	byTokens := len(r.TokensA) > 0 && len(r.TokensB) > 0
	if !byRef && !byTokens {
		return fmt.Errorf("either corpus_a/corpus_b or tokens_a/tokens_b must be provided")
	}
	if byRef && byTokens {
		return fmt.Errorf("corpus references and inline tokens are mutually exclusive")
	}
	if len(r.TokensA) > MaxTokensHardLimit || len(r.TokensB) > MaxTokensHardLimit {
		return fmt.Errorf("too many tokens (maximum: %d per corpus)", MaxTokensHardLimit)
	}
	if r.TopK < 0 {
		return fmt.Errorf("top_k cannot be negative")
	}
	return nil
}

// Inline reports whether the request carries inline token lists.
func (r *CompareRequest) Inline() bool {
	return len(r.TokensA) > 0
}

// WordScoreDTO represents one ranked word in API responses
type WordScoreDTO struct {
	Word   string  `json:"word"`
	PValue float64 `json:"p_value"`
	Diff   float64 `json:"diff"`
}

// DiagnosticDTO reports a word whose significance test failed
type DiagnosticDTO struct {
	Word   string `json:"word"`
	Reason string `json:"reason"`
}

// CompareResponse is the response for POST /api/compare
type CompareResponse struct {
	CorpusA         string          `json:"corpus_a,omitempty"`
	CorpusB         string          `json:"corpus_b,omitempty"`
	ChunkLength     int             `json:"chunk_length"`
	VocabularySize  int             `json:"vocabulary_size"`
	CharacteristicA []WordScoreDTO  `json:"characteristic_a"`
	CharacteristicB []WordScoreDTO  `json:"characteristic_b"`
	Diagnostics     []DiagnosticDTO `json:"diagnostics,omitempty"`
}

// CorpusDTO represents a corpus in API responses
type CorpusDTO struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Source     string `json:"source,omitempty"`
	TokenCount int    `json:"token_count"`
	CreatedAt  string `json:"created_at"`
}

// ListCorporaResponse is the response for GET /api/corpora
type ListCorporaResponse struct {
	Corpora []CorpusDTO `json:"corpora"`
	Count   int         `json:"count"`
}

// DeleteCorpusResponse is the response for DELETE /api/corpora/{id}
type DeleteCorpusResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// MetricsResponse provides server health and database metrics
type MetricsResponse struct {
	Status       string `json:"status"`
	DatabasePath string `json:"database_path"`
	CorpusCount  int    `json:"corpus_count"`
	ChunkLength  int    `json:"chunk_length"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func toWordScoreDTOs(scores []models.WordScore) []WordScoreDTO {
	out := make([]WordScoreDTO, len(scores))
	for i, sc := range scores {
		out[i] = WordScoreDTO{Word: sc.Word, PValue: sc.PValue, Diff: sc.Diff}
	}
	return out
}

func toCompareResponse(result *models.ComparisonResult) CompareResponse {
	resp := CompareResponse{
		CorpusA:         result.CorpusA.Label,
		CorpusB:         result.CorpusB.Label,
		ChunkLength:     result.ChunkLength,
		VocabularySize:  result.VocabularySize,
		CharacteristicA: toWordScoreDTOs(result.CharacteristicA),
		CharacteristicB: toWordScoreDTOs(result.CharacteristicB),
	}
	for _, d := range result.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, DiagnosticDTO{Word: d.Word, Reason: d.Reason})
	}
	return resp
}
