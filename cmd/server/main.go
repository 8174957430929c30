package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/textlabs/CorpusDNA/pkg/corpusdna"
)

var (
	port           int
	dbPath         string
	chunkLength    int
	topK           int
	workers        int
	allowedOrigins string
)

func init() {
	flag.IntVar(&port, "port", 8080, "HTTP server port")
	flag.StringVar(&dbPath, "db", getEnvOrDefault("CORPUS_DB_PATH", "corpusdna.sqlite3"), "Path to SQLite database")
	flag.IntVar(&chunkLength, "chunk", 500, "Chunk length in tokens")
	flag.IntVar(&topK, "top", 10, "Default number of top words per side")
	flag.IntVar(&workers, "workers", 4, "Worker goroutines for per-word significance tests")
	flag.StringVar(&allowedOrigins, "origins", "*", "Comma-separated list of allowed CORS origins (use * for all)")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	flag.Parse()

	// Parse allowed origins
	var origins []string
	if allowedOrigins == "*" {
		origins = []string{"*"}
	} else {
		origins = strings.Split(allowedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	// Create CorpusDNA service
	service, err := corpusdna.NewService(
		corpusdna.WithDBPath(dbPath),
		corpusdna.WithChunkLength(chunkLength),
		corpusdna.WithTopK(topK),
		corpusdna.WithWorkers(workers),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	server := NewServer(service, &ServerConfig{
		Port:           port,
		DBPath:         dbPath,
		ChunkLength:    chunkLength,
		TopK:           topK,
		Workers:        workers,
		AllowedOrigins: origins,
	})

	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
