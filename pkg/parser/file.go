package parser

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// FileParser reads URLs from a local file, one per line. Blank lines and
// lines starting with # are skipped.
type FileParser struct{}

// NewFileParser creates a new file parser
func NewFileParser() *FileParser {
	return &FileParser{}
}

// Parse reads URLs from the file at filePath.
func (p *FileParser) Parse(ctx context.Context, filePath string) ([]URL, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var urls []URL
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(strings.TrimSpace(scanner.Text()), ", \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, URL{Location: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file at line %d: %w", lineNum, err)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs found in file")
	}

	return urls, nil
}
