package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// JobQualificationSentence holds one qualification line of a posting plus its
// embedding. Type partitions the lines: "required", "preferred" or "title".
type JobQualificationSentence struct {
	JobId         int64           `gorm:"primaryKey"`
	Type          string          `gorm:"type:varchar(16);primaryKey"`
	SentenceIndex int             `gorm:"primaryKey"`
	Sentence      string          `gorm:"type:text;not null"`
	Embedding     pgvector.Vector `gorm:"type:vector(768)"`
}

func (JobQualificationSentence) TableName() string {
	return "job_qualification_sentences"
}

// JobEmbedding is the centroid of a posting's qualification-sentence
// embeddings, recomputed whenever the sentences change.
type JobEmbedding struct {
	JobId     int64           `gorm:"primaryKey"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (JobEmbedding) TableName() string {
	return "job_embeddings"
}
