package assistant

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// Chunk is one piece of a knowledge base document, small enough to embed
// and retrieve on its own.
type Chunk struct {
	Source string
	Text   string
}

// LoadKnowledgeBase walks the data directory, reads every .txt and .md
// file and splits the contents into overlapping chunks. An empty
// knowledge base is an error: the assistant is useless without it.
func LoadKnowledgeBase(dataDir string) ([]Chunk, error) {
	var chunks []Chunk
	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			log.Tracef("knowledge base: skipping unsupported file %s", path)
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		fileChunks := ChunkText(string(content), chunkSize, chunkOverlap)
		for _, text := range fileChunks {
			chunks = append(chunks, Chunk{Source: filepath.Base(path), Text: text})
		}
		log.Debugf("knowledge base: %s split into %d chunks", path, len(fileChunks))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk knowledge base dir %s: %w", dataDir, err)
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("no knowledge base documents found in %s", dataDir)
	}
	return chunks, nil
}

// ChunkText splits text into chunks of at most size runes, where each
// chunk repeats the last overlap runes of the previous one so sentences
// cut at a boundary stay retrievable.
func ChunkText(text string, size, overlap int) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	runes := []rune(trimmed)
	if len(runes) <= size {
		return []string{trimmed}
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
