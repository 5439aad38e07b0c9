package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"
)

// LinearRegressor is a multi-output linear regression artifact. One row of
// coefficients per output, evaluated over a fixed-order feature vector.
type LinearRegressor struct {
	Features     []string    `json:"features"`
	Outputs      []string    `json:"outputs"`
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

func (r *LinearRegressor) Predict(features []float64) ([]float64, error) {
	if len(features) != len(r.Features) {
		return nil, fmt.Errorf(
			"regressor expects %d features, got %d", len(r.Features), len(features),
		)
	}

	outputs := make([]float64, len(r.Outputs))
	for i := range r.Outputs {
		val := r.Intercepts[i]
		for j, f := range features {
			val += r.Coefficients[i][j] * f
		}
		outputs[i] = val
	}
	return outputs, nil
}

// ClassifierHead holds the per-class score weights for one categorical
// output of a multi-output classifier.
type ClassifierHead struct {
	Name    string      `json:"name"`
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

// LinearClassifier scores each head's classes over a fixed-order feature
// vector and picks the highest-scoring class code per head.
type LinearClassifier struct {
	Features []string         `json:"features"`
	Heads    []ClassifierHead `json:"heads"`
}

func (c *LinearClassifier) Predict(features []float64) ([]int, error) {
	if len(features) != len(c.Features) {
		return nil, fmt.Errorf(
			"classifier expects %d features, got %d", len(c.Features), len(features),
		)
	}

	codes := make([]int, len(c.Heads))
	for h, head := range c.Heads {
		bestClass, bestScore := 0, 0.0
		for class := range head.Weights {
			score := head.Biases[class]
			for j, f := range features {
				score += head.Weights[class][j] * f
			}
			if class == 0 || score > bestScore {
				bestClass, bestScore = class, score
			}
		}
		codes[h] = bestClass
	}
	return codes, nil
}

func LoadRegressor(path string) (*LinearRegressor, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regressor file: %w", err)
	}

	var regressor LinearRegressor
	if err := json.Unmarshal(content, &regressor); err != nil {
		return nil, fmt.Errorf("unmarshal regressor file %s: %w", path, err)
	}

	if len(regressor.Outputs) == 0 || len(regressor.Features) == 0 {
		return nil, fmt.Errorf("regressor file %s has no outputs or features", path)
	}
	if len(regressor.Coefficients) != len(regressor.Outputs) ||
		len(regressor.Intercepts) != len(regressor.Outputs) {
		return nil, fmt.Errorf("regressor file %s has inconsistent output dimensions", path)
	}
	for i, row := range regressor.Coefficients {
		if len(row) != len(regressor.Features) {
			return nil, fmt.Errorf(
				"regressor file %s: output %s has %d coefficients, expected %d",
				path, regressor.Outputs[i], len(row), len(regressor.Features),
			)
		}
	}

	return &regressor, nil
}

func LoadClassifier(path string) (*LinearClassifier, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read classifier file: %w", err)
	}

	var classifier LinearClassifier
	if err := json.Unmarshal(content, &classifier); err != nil {
		return nil, fmt.Errorf("unmarshal classifier file %s: %w", path, err)
	}

	if len(classifier.Heads) == 0 || len(classifier.Features) == 0 {
		return nil, fmt.Errorf("classifier file %s has no heads or features", path)
	}
	for _, head := range classifier.Heads {
		if len(head.Weights) == 0 || len(head.Weights) != len(head.Biases) {
			return nil, fmt.Errorf(
				"classifier file %s: head %s has inconsistent class dimensions", path, head.Name,
			)
		}
		for _, row := range head.Weights {
			if len(row) != len(classifier.Features) {
				return nil, fmt.Errorf(
					"classifier file %s: head %s has %d weights per class, expected %d",
					path, head.Name, len(row), len(classifier.Features),
				)
			}
		}
	}

	return &classifier, nil
}
