package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"
)

// Vocabulary is the fixed, closed set of category labels <-> numeric codes
// a given trained artifact was built with. Codes are the label positions,
// matching the ordering the training pipeline used.
type Vocabulary struct {
	name        string
	labels      []string
	codeByLabel map[string]int
}

func NewVocabulary(name string, labels []string) (*Vocabulary, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("vocabulary %q has no labels", name)
	}

	codeByLabel := make(map[string]int, len(labels))
	for code, label := range labels {
		if _, ok := codeByLabel[label]; ok {
			return nil, fmt.Errorf("vocabulary %q has duplicate label %q", name, label)
		}
		codeByLabel[label] = code
	}

	return &Vocabulary{
		name:        name,
		labels:      labels,
		codeByLabel: codeByLabel,
	}, nil
}

func (v *Vocabulary) Name() string {
	return v.name
}

// Labels returns the accepted labels in code order
func (v *Vocabulary) Labels() []string {
	labels := make([]string, len(v.labels))
	copy(labels, v.labels)
	return labels
}

func (v *Vocabulary) Encode(label string) (int, error) {
	code, ok := v.codeByLabel[label]
	if !ok {
		return 0, &EncodingError{
			Vocabulary: v.name,
			Value:      label,
			Accepted:   v.Labels(),
		}
	}
	return code, nil
}

func (v *Vocabulary) Decode(code int) (string, error) {
	if code < 0 || code >= len(v.labels) {
		return "", &ModelStateError{Vocabulary: v.name, Code: code}
	}
	return v.labels[code], nil
}

// LoadVocabularies reads a JSON file mapping vocabulary names to their
// label lists, and fails fast when any of the required vocabularies is
// missing or empty, rather than discovering that per-request.
func LoadVocabularies(path string, required ...string) (map[string]*Vocabulary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabularies file: %w", err)
	}

	var rawVocabs map[string][]string
	if err := json.Unmarshal(content, &rawVocabs); err != nil {
		return nil, fmt.Errorf("unmarshal vocabularies file %s: %w", path, err)
	}

	vocabs := make(map[string]*Vocabulary, len(rawVocabs))
	for name, labels := range rawVocabs {
		vocab, err := NewVocabulary(name, labels)
		if err != nil {
			return nil, err
		}
		vocabs[name] = vocab
	}

	for _, name := range required {
		if _, ok := vocabs[name]; !ok {
			return nil, fmt.Errorf("vocabularies file %s is missing required vocabulary %q", path, name)
		}
	}

	return vocabs, nil
}
