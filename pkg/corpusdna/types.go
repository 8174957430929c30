package corpusdna

import "github.com/textlabs/CorpusDNA/pkg/models"

// Aliases so facade callers don't have to import pkg/models as well.
type (
	Corpus           = models.Corpus
	WordScore        = models.WordScore
	ComparisonResult = models.ComparisonResult
	WordDiagnostic   = models.WordDiagnostic
)
