package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/textlabs/CorpusDNA/pkg/corpusdna"
	"github.com/textlabs/CorpusDNA/pkg/logger"
	"github.com/textlabs/CorpusDNA/pkg/models"
	"github.com/textlabs/CorpusDNA/pkg/utils"
)

// Global flags
var (
	dbPath       string
	chunkLength  int
	topK         int
	workers      int
	stopwordPath string
	source       string
)

func init() {
	flag.StringVar(&dbPath, "db", getEnvOrDefault("CORPUS_DB_PATH", "corpusdna.sqlite3"), "Path to the SQLite database file")
	flag.IntVar(&chunkLength, "chunk", 500, "Chunk length in tokens for the bursty analysis")
	flag.IntVar(&topK, "top", 10, "Number of top words to show per side (0 for all)")
	flag.IntVar(&workers, "workers", 1, "Worker goroutines for the per-word significance tests")
	flag.StringVar(&stopwordPath, "stopwords", "", "Optional stopword file (one word per line)")
	flag.StringVar(&source, "source", "", "Corpus source annotation for the add command")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// createService creates a new CorpusDNA service with configured options
func createService() (corpusdna.Service, error) {
	opts := []corpusdna.Option{
		corpusdna.WithDBPath(dbPath),
		corpusdna.WithChunkLength(chunkLength),
		corpusdna.WithTopK(topK),
		corpusdna.WithWorkers(workers),
	}
	if stopwordPath != "" {
		stopwords, err := utils.ReadStopwordFile(stopwordPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, corpusdna.WithStopwords(stopwords))
	}
	return corpusdna.NewService(opts...)
}

func main() {
	log := logger.GetLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	if err := flag.CommandLine.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}
	log.Debugf("Executing command: %s", command)

	switch command {
	case "add":
		handleAdd()
	case "compare":
		handleCompare()
	case "list":
		handleList()
	case "delete":
		handleDelete()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`CorpusDNA - find the vocabulary that tells two corpora apart

Usage:
  corpusdna add <label> <tokenfile> [-source URL]   Register a corpus from a whitespace-tokenized file
  corpusdna compare <labelA> <labelB> [flags]       Rank distinguishing words between two corpora
  corpusdna list                                    List registered corpora
  corpusdna delete <id>                             Delete a corpus and its tokens

Flags:
`)
	flag.PrintDefaults()
}

func handleAdd() {
	args := flag.Args()
	if len(args) != 2 {
		fmt.Println("Usage: corpusdna add <label> <tokenfile>")
		os.Exit(1)
	}
	label, path := args[0], args[1]

	tokens, err := utils.ReadTokenFile(path)
	if err != nil {
		logger.Fatalf("Failed to read token file: %v", err)
	}

	service, err := createService()
	if err != nil {
		logger.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	src := source
	if src == "" {
		src = path
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	corpusID, err := service.AddCorpus(ctx, label, src, tokens)
	if err != nil {
		logger.Fatalf("Failed to add corpus: %v", err)
	}

	fmt.Printf("Added corpus %q (ID=%s, %s tokens)\n", label, corpusID, humanize.Comma(int64(len(tokens))))
}

func handleCompare() {
	args := flag.Args()
	if len(args) != 2 {
		fmt.Println("Usage: corpusdna compare <labelA|idA> <labelB|idB>")
		os.Exit(1)
	}

	service, err := createService()
	if err != nil {
		logger.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	idA, err := resolveCorpus(service, args[0])
	if err != nil {
		logger.Fatalf("Corpus A: %v", err)
	}
	idB, err := resolveCorpus(service, args[1])
	if err != nil {
		logger.Fatalf("Corpus B: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := service.Compare(ctx, idA, idB, topK)
	if err != nil {
		logger.Fatalf("Comparison failed: %v", err)
	}

	fmt.Printf("\n%s vs %s (chunk=%d, vocabulary=%s words)\n\n",
		result.CorpusA.Label, result.CorpusB.Label,
		result.ChunkLength, humanize.Comma(int64(result.VocabularySize)))

	printSide(fmt.Sprintf("Characteristic of %s", result.CorpusA.Label), result.CharacteristicA)
	printSide(fmt.Sprintf("Characteristic of %s", result.CorpusB.Label), result.CharacteristicB)

	if len(result.Diagnostics) > 0 {
		fmt.Printf("%d words could not be tested (scored p=1):\n", len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			fmt.Printf("  %-20s %s\n", d.Word, d.Reason)
		}
	}
}

func printSide(title string, scores []models.WordScore) {
	fmt.Println(title)
	if len(scores) == 0 {
		fmt.Println("  (none)")
		fmt.Println()
		return
	}
	fmt.Printf("  %-4s %-24s %-12s %s\n", "#", "WORD", "P-VALUE", "FREQ DIFF")
	for i, sc := range scores {
		fmt.Printf("  %-4d %-24s %-12.6g %+.6f\n", i+1, sc.Word, sc.PValue, sc.Diff)
	}
	fmt.Println()
}

func handleList() {
	service, err := createService()
	if err != nil {
		logger.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	corpora, err := service.ListCorpora()
	if err != nil {
		logger.Fatalf("Failed to list corpora: %v", err)
	}

	if len(corpora) == 0 {
		fmt.Println("No corpora registered yet.")
		return
	}

	fmt.Printf("%-36s %-24s %-12s %s\n", "ID", "LABEL", "TOKENS", "SOURCE")
	for _, c := range corpora {
		fmt.Printf("%-36s %-24s %-12s %s\n", c.ID, c.Label, humanize.Comma(int64(c.TokenCount)), c.Source)
	}
}

func handleDelete() {
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: corpusdna delete <id>")
		os.Exit(1)
	}

	service, err := createService()
	if err != nil {
		logger.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	if err := service.DeleteCorpus(args[0]); err != nil {
		logger.Fatalf("Failed to delete corpus: %v", err)
	}
	fmt.Printf("Deleted corpus %s\n", args[0])
}

// resolveCorpus accepts either a corpus ID or a label.
func resolveCorpus(service corpusdna.Service, ref string) (string, error) {
	if c, err := service.GetCorpusByID(ref); err == nil {
		return c.ID, nil
	}
	corpora, err := service.ListCorpora()
	if err != nil {
		return "", err
	}
	for _, c := range corpora {
		if c.Label == ref {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("no corpus with ID or label %q", ref)
}
