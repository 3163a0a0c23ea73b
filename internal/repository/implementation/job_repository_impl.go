package implementation

import (
	"context"
	"errors"

	"chapchap-be/internal/entity"
	"chapchap-be/internal/mapper"
	"chapchap-be/internal/model"
	"chapchap-be/internal/repository/contract"
	"chapchap-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JobRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JobMapper
}

func NewJobRepository(db *gorm.DB) contract.JobRepository {
	return &JobRepositoryImpl{
		db:     db,
		mapper: mapper.NewJobMapper(),
	}
}

func (r *JobRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *JobRepositoryImpl) findJobs(ctx context.Context, specs ...specification.Specification) ([]*entity.JobPosting, error) {
	var models []*model.JobInfo
	query := r.applySpecifications(r.db.WithContext(ctx).
		Preload("Company").
		Preload("AffiliateCompany").
		Preload("Tags.Tag"), specs...)
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(models))
	for i, m := range models {
		ids[i] = m.Id
	}

	sentencesByJob, err := r.sentencesForJobs(ctx, ids)
	if err != nil {
		return nil, err
	}

	postings := make([]*entity.JobPosting, len(models))
	for i, m := range models {
		postings[i] = r.mapper.ToEntity(m, sentencesByJob[m.Id])
	}
	return postings, nil
}

func (r *JobRepositoryImpl) sentencesForJobs(ctx context.Context, jobIds []int64) (map[int64][]*model.JobQualificationSentence, error) {
	var sentences []*model.JobQualificationSentence
	err := r.db.WithContext(ctx).
		Where("job_id IN ?", jobIds).
		Order("job_id ASC, type ASC, sentence_index ASC").
		Find(&sentences).Error
	if err != nil {
		return nil, err
	}

	byJob := make(map[int64][]*model.JobQualificationSentence, len(jobIds))
	for _, s := range sentences {
		byJob[s.JobId] = append(byJob[s.JobId], s)
	}
	return byJob, nil
}

func (r *JobRepositoryImpl) FindActiveByIds(ctx context.Context, ids []int64) ([]*entity.JobPosting, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findJobs(ctx, specification.ActiveOnly{}, specification.ByJobIds{Ids: ids})
}

func (r *JobRepositoryImpl) FindActiveById(ctx context.Context, id int64) (*entity.JobPosting, error) {
	postings, err := r.findJobs(ctx, specification.ActiveOnly{}, specification.ByJobIds{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		return nil, nil
	}
	return postings[0], nil
}

func (r *JobRepositoryImpl) FindActive(ctx context.Context, offset, limit int) ([]*entity.JobPosting, error) {
	return r.findJobs(ctx, specification.ActiveOnly{}, specification.Paginate{Offset: offset, Limit: limit})
}

func (r *JobRepositoryImpl) FindActiveJobIds(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.JobInfo{}).
		Where("is_active = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *JobRepositoryImpl) FindSentencesByJobId(ctx context.Context, jobId int64) ([]*entity.QualificationSentence, error) {
	var models []*model.JobQualificationSentence
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobId).
		Order("type ASC, sentence_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	sentences := make([]*entity.QualificationSentence, len(models))
	for i, m := range models {
		sentences[i] = r.mapper.SentenceToEntity(m)
	}
	return sentences, nil
}

func (r *JobRepositoryImpl) UpdateSentenceEmbedding(ctx context.Context, sentence *entity.QualificationSentence) error {
	result := r.db.WithContext(ctx).
		Model(&model.JobQualificationSentence{}).
		Where("job_id = ? AND type = ? AND sentence_index = ?",
			sentence.JobId, sentence.Type, sentence.SentenceIndex).
		Update("embedding", pgvector.NewVector(sentence.Embedding))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("qualification sentence not found")
	}
	return nil
}
