package match

import (
	"context"

	"chapchap-be/internal/entity"
)

// JobCatalog is the slice of the job repository the pipeline reads.
type JobCatalog interface {
	FindActiveByIds(ctx context.Context, ids []int64) ([]*entity.JobPosting, error)
	FindActiveById(ctx context.Context, id int64) (*entity.JobPosting, error)
}

// VectorIndex answers nearest-neighbour queries over posting centroids by
// cosine distance, nearest first.
type VectorIndex interface {
	Nearest(ctx context.Context, embedding []float32, limit int) ([]entity.JobDistance, error)
}

// CompanyDirectory lists every company with its alternate spellings for the
// prior-employer scan.
type CompanyDirectory interface {
	FindAllWithAlternates(ctx context.Context) ([]*entity.Company, error)
}
