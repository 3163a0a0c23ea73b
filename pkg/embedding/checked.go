package embedding

import (
	"context"
	"fmt"
)

// dimensionChecked wraps a provider and rejects vectors whose dimension does
// not match the configured storage column. A model/config mismatch surfaces
// here instead of as a pgvector insert error deep in the worker.
type dimensionChecked struct {
	inner EmbeddingProvider
	dim   int
}

func newDimensionChecked(inner EmbeddingProvider, dim int) *dimensionChecked {
	return &dimensionChecked{inner: inner, dim: dim}
}

func (c *dimensionChecked) Generate(ctx context.Context, text string) ([]float32, error) {
	vector, err := c.inner.Generate(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vector) != c.dim {
		return nil, fmt.Errorf("embedding has dimension %d, expected %d", len(vector), c.dim)
	}
	return vector, nil
}

func (c *dimensionChecked) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := c.inner.GenerateBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	for i, vector := range vectors {
		if len(vector) != c.dim {
			return nil, fmt.Errorf("embedding %d has dimension %d, expected %d", i, len(vector), c.dim)
		}
	}
	return vectors, nil
}
