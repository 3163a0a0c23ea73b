package implementation

import (
	"context"

	"chapchap-be/internal/entity"
	"chapchap-be/internal/model"
	"chapchap-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobEmbeddingRepositoryImpl struct {
	db *gorm.DB
}

func NewJobEmbeddingRepository(db *gorm.DB) contract.JobEmbeddingRepository {
	return &JobEmbeddingRepositoryImpl{db: db}
}

// Nearest runs a cosine-distance scan over the posting centroids. Only active
// postings are candidates; exclusion filtering happens upstream in the
// ranking step.
func (r *JobEmbeddingRepositoryImpl) Nearest(ctx context.Context, embedding []float32, limit int) ([]entity.JobDistance, error) {
	if limit <= 0 {
		limit = 10
	}

	type row struct {
		JobId    int64
		Distance float64
	}
	var rows []row

	queryVector := pgvector.NewVector(embedding)

	// pgvector cosine distance: embedding <=> query (0 = identical).
	err := r.db.WithContext(ctx).
		Table("job_embeddings").
		Select("job_embeddings.job_id, job_embeddings.embedding <=> ? AS distance", queryVector).
		Joins("JOIN job_info ON job_info.id = job_embeddings.job_id").
		Where("job_info.is_active = ?", true).
		Order("distance ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	matches := make([]entity.JobDistance, len(rows))
	for i, row := range rows {
		matches[i] = entity.JobDistance{JobId: row.JobId, Distance: row.Distance}
	}
	return matches, nil
}

func (r *JobEmbeddingRepositoryImpl) Upsert(ctx context.Context, jobId int64, embedding []float32) error {
	record := &model.JobEmbedding{
		JobId:     jobId,
		Embedding: pgvector.NewVector(embedding),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "updated_at"}),
		}).
		Create(record).Error
}
