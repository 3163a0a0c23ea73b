package match

import (
	"context"
	"errors"
	"strings"
	"sync"

	"chapchap-be/internal/constant"
	"chapchap-be/internal/entity"
	"chapchap-be/internal/pkg/logger"
	"chapchap-be/pkg/embedding"
	"chapchap-be/pkg/llm"
	"chapchap-be/pkg/store"
)

const logModule = "match_pipeline"

// Pipeline runs the staged resume-to-job matching flow. Every expensive step
// checkpoints its output plus the next stage before returning, so a retry
// after any failure resumes from the last paid-for result instead of
// recomputing it.
type Pipeline struct {
	sessions  store.SessionStore
	catalog   JobCatalog
	index     VectorIndex
	companies CompanyDirectory
	llm       llm.LLMProvider
	embedder  embedding.EmbeddingProvider
	log       logger.ILogger

	retrievalCount int
	rerankCount    int
	llmOpts        []llm.Option

	active sync.Map // sessionId -> struct{}, one in-flight operation per session
}

func NewPipeline(
	sessions store.SessionStore,
	catalog JobCatalog,
	index VectorIndex,
	companies CompanyDirectory,
	llmProvider llm.LLMProvider,
	embedder embedding.EmbeddingProvider,
	log logger.ILogger,
	retrievalCount, rerankCount int,
	llmOpts ...llm.Option,
) *Pipeline {
	return &Pipeline{
		sessions:       sessions,
		catalog:        catalog,
		index:          index,
		companies:      companies,
		llm:            llmProvider,
		embedder:       embedder,
		log:            log,
		retrievalCount: retrievalCount,
		rerankCount:    rerankCount,
		llmOpts:        llmOpts,
	}
}

// acquire takes the session's advisory lock without blocking. Two concurrent
// operations on one session would race their checkpoints, so the loser is
// rejected instead of queued.
func (p *Pipeline) acquire(sessionId string) (release func(), err error) {
	if _, loaded := p.active.LoadOrStore(sessionId, struct{}{}); loaded {
		return nil, PreconditionError("another operation is already running for this session")
	}
	return func() { p.active.Delete(sessionId) }, nil
}

// SubmitResume supersedes any existing session state, records the exclusion
// set, streams the resume summary through onToken and checkpoints the parsed
// sentences. On success the session is parked at AWAITING_EMBED.
func (p *Pipeline) SubmitResume(ctx context.Context, sessionId, resumeText string, onToken llm.TokenHandler) error {
	release, err := p.acquire(sessionId)
	if err != nil {
		return err
	}
	defer release()

	if err := p.sessions.Clear(ctx, sessionId); err != nil {
		return StoreError("clear previous session", err)
	}

	companies, err := p.companies.FindAllWithAlternates(ctx)
	if err != nil {
		return StoreError("load company directory", err)
	}
	excluded := ExcludedCompanyIds(resumeText, companies)

	history := []store.Turn{{Role: "user", Content: resumeText}}

	// Checkpoint before the model call: a crash mid-stream leaves the
	// session at SUMMARIZING with the resume intact, and GetMatches will
	// refuse until the summary is redone.
	err = p.sessions.Save(ctx, sessionId, store.Update{
		store.FieldStage:              store.StageSummarizing,
		store.FieldResumeText:         resumeText,
		store.FieldExcludedCompanyIds: excluded,
		store.FieldMessageHistory:     history,
	})
	if err != nil {
		return StoreError("checkpoint resume submission", err)
	}

	p.log.Info(logModule, "summarizing resume", map[string]interface{}{
		"session_id":         sessionId,
		"resume_chars":       len(resumeText),
		"excluded_companies": len(excluded),
	})

	var buf strings.Builder
	streamErr := p.llm.ChatStream(ctx, []llm.Message{
		{Role: "system", Content: constant.ResumeSummaryPrompt},
		{Role: "user", Content: resumeText},
	}, func(token string) error {
		buf.WriteString(token)
		if onToken != nil {
			return onToken(token)
		}
		return nil
	}, p.llmOpts...)
	if streamErr != nil {
		return UpstreamModelError("resume summarization failed", streamErr)
	}

	summary := buf.String()
	sentences := ParseSummarySentences(summary)
	if len(sentences) == 0 {
		return UpstreamModelError("summary contained no sentences", nil)
	}

	history = append(history, store.Turn{Role: "assistant", Content: summary})
	err = p.sessions.Save(ctx, sessionId, store.Update{
		store.FieldStage:            store.StageAwaitingEmbed,
		store.FieldSummarySentences: sentences,
		store.FieldMessageHistory:   history,
	})
	if err != nil {
		return StoreError("checkpoint summary", err)
	}

	p.log.Info(logModule, "resume summarized", map[string]interface{}{
		"session_id": sessionId,
		"sentences":  len(sentences),
	})
	return nil
}

// GetMatches drives the session from its checkpointed stage to MATCHED and
// returns the reranked results. A session already at MATCHED returns its
// stored results without touching any backend. Calling before the summary
// exists is a precondition failure.
func (p *Pipeline) GetMatches(ctx context.Context, sessionId string) ([]store.RankedResult, error) {
	release, err := p.acquire(sessionId)
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := p.sessions.Load(ctx, sessionId)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFoundError("no session for this id")
		}
		return nil, StoreError("load session", err)
	}

	for {
		switch state.Stage {
		case store.StageMatched:
			return state.RerankedResults, nil

		case store.StageAwaitingEmbed, store.StageEmbedding:
			if err := p.embedSummary(ctx, sessionId, state); err != nil {
				return nil, err
			}

		case store.StageRetrieving:
			if err := p.retrieveJobs(ctx, sessionId, state); err != nil {
				return nil, err
			}

		case store.StageReranking:
			if err := p.rerankJobs(ctx, sessionId, state); err != nil {
				return nil, err
			}

		default:
			return nil, PreconditionError("resume has not been summarized yet")
		}
	}
}

func (p *Pipeline) embedSummary(ctx context.Context, sessionId string, state *store.SessionState) error {
	vectors, err := p.embedder.GenerateBatch(ctx, state.SummarySentences)
	if err != nil {
		return UpstreamModelError("embed summary sentences", err)
	}
	avg := embedding.Centroid(vectors)

	err = p.sessions.Save(ctx, sessionId, store.Update{
		store.FieldStage:              store.StageRetrieving,
		store.FieldSentenceEmbeddings: vectors,
		store.FieldAvgEmbedding:       avg,
	})
	if err != nil {
		return StoreError("checkpoint embeddings", err)
	}

	state.SentenceEmbeddings = vectors
	state.AvgEmbedding = avg
	state.Stage = store.StageRetrieving

	p.log.Info(logModule, "summary embedded", map[string]interface{}{
		"session_id": sessionId,
		"vectors":    len(vectors),
	})
	return nil
}

func (p *Pipeline) retrieveJobs(ctx context.Context, sessionId string, state *store.SessionState) error {
	// Headroom over K so the exclusion filter cannot starve the result set:
	// every excluded company can cost at most its own postings.
	limit := p.retrievalCount + len(state.ExcludedCompanyIds)

	hits, err := p.index.Nearest(ctx, state.AvgEmbedding, limit)
	if err != nil {
		return StoreError("vector search", err)
	}

	ids := make([]int64, len(hits))
	for i, hit := range hits {
		ids[i] = hit.JobId
	}
	jobs, err := p.catalog.FindActiveByIds(ctx, ids)
	if err != nil {
		return StoreError("load retrieved postings", err)
	}

	retrieved := Rank(hits, jobs, state.ExcludedCompanyIds, p.retrievalCount)

	err = p.sessions.Save(ctx, sessionId, store.Update{
		store.FieldStage:         store.StageReranking,
		store.FieldRetrievedJobs: retrieved,
	})
	if err != nil {
		return StoreError("checkpoint retrieval", err)
	}

	state.RetrievedJobs = retrieved
	state.Stage = store.StageReranking

	p.log.Info(logModule, "jobs retrieved", map[string]interface{}{
		"session_id": sessionId,
		"candidates": len(hits),
		"retained":   len(retrieved),
	})
	return nil
}

func (p *Pipeline) rerankJobs(ctx context.Context, sessionId string, state *store.SessionState) error {
	postings := make([]entity.JobPosting, len(state.RetrievedJobs))
	for i, r := range state.RetrievedJobs {
		postings[i] = r.Job
	}

	var results []store.RankedResult
	if len(postings) > 0 {
		prompt := constant.RerankJobPrompt(state.ResumeText, postings, p.rerankCount)
		raw, err := p.llm.GenerateJSON(ctx, prompt, p.llmOpts...)
		if err != nil {
			return UpstreamModelError("rerank generation failed", err)
		}

		items, err := ParseRerank(raw)
		if err != nil {
			return UpstreamModelError("rerank output was not valid JSON", err)
		}
		results = ValidateRerank(items, state.RetrievedJobs, p.rerankCount)
	}

	err := p.sessions.Save(ctx, sessionId, store.Update{
		store.FieldStage:           store.StageMatched,
		store.FieldRerankedResults: results,
	})
	if err != nil {
		return StoreError("checkpoint rerank", err)
	}

	state.RerankedResults = results
	state.Stage = store.StageMatched

	p.log.Info(logModule, "jobs reranked", map[string]interface{}{
		"session_id": sessionId,
		"results":    len(results),
	})
	return nil
}

// GenerateCoverLetter streams a cover letter for any active posting once the
// session is matched; the target is re-fetched in full and is not limited to
// the retrieved shortlist. It reads the checkpoint but never writes it:
// regenerating for another posting needs no state transition.
func (p *Pipeline) GenerateCoverLetter(ctx context.Context, sessionId string, jobId int64, onToken llm.TokenHandler) error {
	if onToken == nil {
		onToken = func(string) error { return nil }
	}

	release, err := p.acquire(sessionId)
	if err != nil {
		return err
	}
	defer release()

	state, err := p.sessions.Load(ctx, sessionId)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NotFoundError("no session for this id")
		}
		return StoreError("load session", err)
	}
	if state.Stage != store.StageMatched {
		return PreconditionError("matching has not completed for this session")
	}

	job, err := p.catalog.FindActiveById(ctx, jobId)
	if err != nil {
		return StoreError("load posting", err)
	}
	if job == nil {
		return NotFoundError("posting no longer active")
	}

	prompt := constant.CoverLetterPrompt(state.ResumeText, job)
	streamErr := p.llm.ChatStream(ctx, []llm.Message{
		{Role: "user", Content: prompt},
	}, onToken, p.llmOpts...)
	if streamErr != nil {
		return UpstreamModelError("cover letter generation failed", streamErr)
	}

	p.log.Info(logModule, "cover letter generated", map[string]interface{}{
		"session_id": sessionId,
		"job_id":     jobId,
	})
	return nil
}

// Reset drops the session's checkpoint entirely.
func (p *Pipeline) Reset(ctx context.Context, sessionId string) error {
	release, err := p.acquire(sessionId)
	if err != nil {
		return err
	}
	defer release()

	if err := p.sessions.Clear(ctx, sessionId); err != nil {
		return StoreError("clear session", err)
	}
	return nil
}
