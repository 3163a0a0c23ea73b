package store

import (
	"context"
	"errors"

	"chapchap-be/internal/entity"
)

// Stage is the persisted position of a session inside the matching pipeline.
type Stage string

const (
	StageInit          Stage = "INIT"
	StageSummarizing   Stage = "SUMMARIZING"
	StageAwaitingEmbed Stage = "AWAITING_EMBED"
	StageEmbedding     Stage = "EMBEDDING"
	StageRetrieving    Stage = "RETRIEVING"
	StageReranking     Stage = "RERANKING"
	StageMatched       Stage = "MATCHED"
)

// Turn is one role-tagged entry of the session's message history.
type Turn struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// RetrievedJob is a catalog posting enriched with its vector-search score.
type RetrievedJob struct {
	Job        entity.JobPosting `json:"job"`
	Distance   float64           `json:"distance"`
	Similarity float64           `json:"similarity"` // 1 - Distance
}

// RankedResult is one surviving rerank entry: the chosen posting with the
// model's justification and echoed title.
type RankedResult struct {
	JobId       int64   `json:"job_id"`
	JobTitle    string  `json:"job_title"`  // catalog title
	RankTitle   string  `json:"rank_title"` // title echoed by the rerank model
	CompanyName string  `json:"company_name"`
	Reason      string  `json:"reason"`
	Similarity  float64 `json:"similarity"`
}

// SessionState is the full checkpoint snapshot of one candidate session.
// Fields are populated strictly in stage order.
type SessionState struct {
	SessionId          string         `json:"session_id"`
	Stage              Stage          `json:"stage"`
	ResumeText         string         `json:"resume_text"`
	ExcludedCompanyIds []int64        `json:"excluded_company_ids"`
	SummarySentences   []string       `json:"summary_sentences"`
	SentenceEmbeddings [][]float32    `json:"sentence_embeddings"`
	AvgEmbedding       []float32      `json:"avg_embedding"`
	RetrievedJobs      []RetrievedJob `json:"retrieved_jobs"`
	RerankedResults    []RankedResult `json:"reranked_results"`
	MessageHistory     []Turn         `json:"message_history"`
}

// Field names used in partial updates. They double as the JSON keys above and
// as the storage column / hash-field names of every adapter.
const (
	FieldStage              = "stage"
	FieldResumeText         = "resume_text"
	FieldExcludedCompanyIds = "excluded_company_ids"
	FieldSummarySentences   = "summary_sentences"
	FieldSentenceEmbeddings = "sentence_embeddings"
	FieldAvgEmbedding       = "avg_embedding"
	FieldRetrievedJobs      = "retrieved_jobs"
	FieldRerankedResults    = "reranked_results"
	FieldMessageHistory     = "message_history"
)

// Update is a partial session update: only the named fields are written,
// everything else keeps its stored value.
type Update map[string]interface{}

// ErrNotFound is returned by Load for unknown session ids.
var ErrNotFound = errors.New("session not found")

// SessionStore is the durable backing store for pipeline checkpoints.
// Save must be durable before it returns nil: resumption correctness after a
// process restart depends on it.
type SessionStore interface {
	Load(ctx context.Context, sessionId string) (*SessionState, error)
	Save(ctx context.Context, sessionId string, update Update) error
	Clear(ctx context.Context, sessionId string) error
}
