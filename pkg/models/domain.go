package models

import "time"

// Corpus represents a registered corpus in the database.
type Corpus struct {
	ID         string    // Database ID (UUID)
	Label      string    // Human-readable corpus label (unique)
	Source     string    // Where the corpus came from (file path, URL, ...)
	TokenCount int       // Number of tokens stored for this corpus
	CreatedAt  time.Time // Registration time
}

// WordScore is one entry of a ranked keyword list.
type WordScore struct {
	Word   string  // The vocabulary word
	PValue float64 // Two-sided rank-sum p-value, in [0, 1]
	Diff   float64 // Relative-frequency difference, in [-1, 1]
}

// ComparisonResult is the outcome of comparing two corpora. Both lists are
// ranked by ascending p-value; CharacteristicA holds words whose frequency
// difference is <= 0, CharacteristicB the rest.
type ComparisonResult struct {
	CorpusA         Corpus      // Metadata of the first corpus (zero for ad-hoc token input)
	CorpusB         Corpus      // Metadata of the second corpus
	ChunkLength     int         // Window size the analysis ran with
	VocabularySize  int         // Number of distinct words tested
	CharacteristicA []WordScore // Words characteristic of corpus A
	CharacteristicB []WordScore // Words characteristic of corpus B
	Diagnostics     []WordDiagnostic
}

// WordDiagnostic records a word whose significance test failed and was
// scored with the sentinel p-value 1 instead of aborting the comparison.
type WordDiagnostic struct {
	Word   string
	Reason string
}
