package corpusdna

import "github.com/textlabs/CorpusDNA/pkg/corpusdna/keyness"

type Config struct {
	DBPath      string
	ChunkLength int
	TopK        int
	Workers     int
	Stopwords   map[string]bool
	Logger      Logger
	Storage     Storage
	Tester      keyness.RankSumTester
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithChunkLength(n int) Option {
	return func(c *Config) {
		c.ChunkLength = n
	}
}

func WithTopK(k int) Option {
	return func(c *Config) {
		c.TopK = k
	}
}

func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

func WithStopwords(stopwords map[string]bool) Option {
	return func(c *Config) {
		c.Stopwords = stopwords
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

func WithTester(tester keyness.RankSumTester) Option {
	return func(c *Config) {
		c.Tester = tester
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:      "corpusdna.sqlite3",
		ChunkLength: keyness.DefaultChunkLength,
		TopK:        10,
		Workers:     1,
	}
}
