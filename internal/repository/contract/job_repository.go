package contract

import (
	"context"

	"chapchap-be/internal/entity"
)

// JobRepository is the read side of the job catalog: postings joined with
// companies, tags and qualification sentences.
type JobRepository interface {
	FindActiveByIds(ctx context.Context, ids []int64) ([]*entity.JobPosting, error)
	FindActiveById(ctx context.Context, id int64) (*entity.JobPosting, error)
	FindActive(ctx context.Context, offset, limit int) ([]*entity.JobPosting, error)
	FindActiveJobIds(ctx context.Context) ([]int64, error)
	FindSentencesByJobId(ctx context.Context, jobId int64) ([]*entity.QualificationSentence, error)
	UpdateSentenceEmbedding(ctx context.Context, sentence *entity.QualificationSentence) error
}

// JobEmbeddingRepository owns the per-posting centroid vectors and answers
// nearest-neighbour queries by cosine distance.
type JobEmbeddingRepository interface {
	Nearest(ctx context.Context, embedding []float32, limit int) ([]entity.JobDistance, error)
	Upsert(ctx context.Context, jobId int64, embedding []float32) error
}
