package utils

import (
	"bufio"
	"fmt"
	"os"
)

// ReadTokenFile reads a text file and splits it on whitespace into a token
// sequence. This is deliberately naive tokenization for the outer CLI and
// server wrappers; the analysis core takes whatever token sequences the
// caller hands it.
func ReadTokenFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening token file: %w", err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	return tokens, nil
}

// ReadStopwordFile reads a newline-separated stopword list into a set.
// Blank lines and lines starting with '#' are skipped.
func ReadStopwordFile(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stopword file: %w", err)
	}
	defer f.Close()

	stopwords := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := scanner.Text()
		if word == "" || word[0] == '#' {
			continue
		}
		stopwords[word] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stopword file: %w", err)
	}
	return stopwords, nil
}
