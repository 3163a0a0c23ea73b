package embedding

import "context"

// EmbeddingProvider converts text to fixed-dimension vectors. GenerateBatch
// embeds all texts in one backend call; order is preserved.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	GenerateBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Centroid returns the element-wise mean of the vectors. All vectors must
// share one dimension; an empty input yields nil.
func Centroid(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	dim := len(vectors[0])
	sum := make([]float64, dim)
	for _, vec := range vectors {
		for i, v := range vec {
			sum[i] += float64(v)
		}
	}

	mean := make([]float32, dim)
	n := float64(len(vectors))
	for i, s := range sum {
		mean[i] = float32(s / n)
	}
	return mean
}
