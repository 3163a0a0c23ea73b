package service

import (
	"context"
	"testing"

	"chapchap-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

type stubJobRepo struct {
	sentences map[int64][]*entity.QualificationSentence
	updated   []*entity.QualificationSentence
}

func (s *stubJobRepo) FindActiveByIds(_ context.Context, _ []int64) ([]*entity.JobPosting, error) {
	return nil, nil
}
func (s *stubJobRepo) FindActiveById(_ context.Context, _ int64) (*entity.JobPosting, error) {
	return nil, nil
}
func (s *stubJobRepo) FindActive(_ context.Context, _, _ int) ([]*entity.JobPosting, error) {
	return nil, nil
}
func (s *stubJobRepo) FindActiveJobIds(_ context.Context) ([]int64, error) {
	return nil, nil
}
func (s *stubJobRepo) FindSentencesByJobId(_ context.Context, jobId int64) ([]*entity.QualificationSentence, error) {
	return s.sentences[jobId], nil
}
func (s *stubJobRepo) UpdateSentenceEmbedding(_ context.Context, sentence *entity.QualificationSentence) error {
	s.updated = append(s.updated, sentence)
	return nil
}

type stubEmbeddingRepo struct {
	upserts map[int64][]float32
}

func (s *stubEmbeddingRepo) Nearest(_ context.Context, _ []float32, _ int) ([]entity.JobDistance, error) {
	return nil, nil
}
func (s *stubEmbeddingRepo) Upsert(_ context.Context, jobId int64, embedding []float32) error {
	if s.upserts == nil {
		s.upserts = map[int64][]float32{}
	}
	s.upserts[jobId] = embedding
	return nil
}

type fixedEmbedder struct {
	vectors [][]float32
}

func (f *fixedEmbedder) Generate(_ context.Context, _ string) ([]float32, error) {
	return f.vectors[0], nil
}
func (f *fixedEmbedder) GenerateBatch(_ context.Context, texts []string) ([][]float32, error) {
	return f.vectors[:len(texts)], nil
}

func TestEmbedJobWritesSentencesAndCentroid(t *testing.T) {
	jobs := &stubJobRepo{sentences: map[int64][]*entity.QualificationSentence{
		7: {
			{JobId: 7, Type: entity.SentenceTypeTitle, SentenceIndex: 0, Sentence: "백엔드 엔지니어"},
			{JobId: 7, Type: entity.SentenceTypeRequired, SentenceIndex: 0, Sentence: "Go 경험"},
		},
	}}
	embeddings := &stubEmbeddingRepo{}
	embedder := &fixedEmbedder{vectors: [][]float32{{1, 0}, {0, 1}}}

	cs := NewConsumerService(nil, "EMBED_JOB_SENTENCES", jobs, embeddings, embedder)

	err := cs.EmbedJob(context.Background(), 7)
	assert.NoError(t, err)

	assert.Len(t, jobs.updated, 2)
	assert.Equal(t, []float32{1, 0}, jobs.updated[0].Embedding)
	assert.Equal(t, []float32{0, 1}, jobs.updated[1].Embedding)

	assert.Equal(t, []float32{0.5, 0.5}, embeddings.upserts[7])
}

func TestEmbedJobSkipsSentencelessPosting(t *testing.T) {
	jobs := &stubJobRepo{sentences: map[int64][]*entity.QualificationSentence{}}
	embeddings := &stubEmbeddingRepo{}

	cs := NewConsumerService(nil, "EMBED_JOB_SENTENCES", jobs, embeddings, &fixedEmbedder{})

	err := cs.EmbedJob(context.Background(), 42)
	assert.NoError(t, err)
	assert.Empty(t, embeddings.upserts)
}
