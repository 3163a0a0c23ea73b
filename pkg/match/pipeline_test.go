package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"chapchap-be/internal/entity"
	"chapchap-be/internal/repository/memory"
	"chapchap-be/pkg/llm"
	"chapchap-be/pkg/store"
)

// --- stubs ---

type stubCatalog struct {
	jobs    map[int64]*entity.JobPosting
	byIds   int
	byIdOne int
}

func (s *stubCatalog) FindActiveByIds(_ context.Context, ids []int64) ([]*entity.JobPosting, error) {
	s.byIds++
	var out []*entity.JobPosting
	for _, id := range ids {
		if job, ok := s.jobs[id]; ok {
			out = append(out, job)
		}
	}
	return out, nil
}

func (s *stubCatalog) FindActiveById(_ context.Context, id int64) (*entity.JobPosting, error) {
	s.byIdOne++
	return s.jobs[id], nil
}

type stubIndex struct {
	hits  []entity.JobDistance
	calls int
}

func (s *stubIndex) Nearest(_ context.Context, _ []float32, limit int) ([]entity.JobDistance, error) {
	s.calls++
	if len(s.hits) > limit {
		return s.hits[:limit], nil
	}
	return s.hits, nil
}

type stubCompanies struct {
	companies []*entity.Company
	calls     int
}

func (s *stubCompanies) FindAllWithAlternates(_ context.Context) ([]*entity.Company, error) {
	s.calls++
	return s.companies, nil
}

type stubLLM struct {
	summary     string
	summaryErr  error
	rerankJSON  string
	rerankErr   error
	streamCalls int
	jsonCalls   int
	lastOpts    []llm.Option
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return s.summary, s.summaryErr
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return s.summary, s.summaryErr
}

func (s *stubLLM) ChatStream(_ context.Context, _ []llm.Message, onToken llm.TokenHandler, opts ...llm.Option) error {
	s.streamCalls++
	s.lastOpts = opts
	if s.summaryErr != nil {
		return s.summaryErr
	}
	// Emit in two chunks to exercise buffering.
	half := len(s.summary) / 2
	for _, chunk := range []string{s.summary[:half], s.summary[half:]} {
		if err := onToken(chunk); err != nil {
			return err
		}
	}
	return nil
}

func (s *stubLLM) GenerateJSON(_ context.Context, _ string, opts ...llm.Option) (string, error) {
	s.jsonCalls++
	s.lastOpts = opts
	return s.rerankJSON, s.rerankErr
}

type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) Generate(_ context.Context, text string) ([]float32, error) {
	vs, _ := s.GenerateBatch(context.Background(), []string{text})
	return vs[0], nil
}

func (s *stubEmbedder) GenerateBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i + 1), 1}
	}
	return out, nil
}

type fixture struct {
	pipeline  *Pipeline
	sessions  store.SessionStore
	catalog   *stubCatalog
	index     *stubIndex
	companies *stubCompanies
	llm       *stubLLM
	embedder  *stubEmbedder
}

func newFixture() *fixture {
	companies := &stubCompanies{companies: []*entity.Company{
		{Id: 1, Name: "네이버", AlternateNames: []string{"NAVER"}},
		{Id: 2, Name: "토스", AlternateNames: []string{"비바리퍼블리카"}},
	}}

	catalog := &stubCatalog{jobs: map[int64]*entity.JobPosting{}}
	var hits []entity.JobDistance
	for i := int64(1); i <= 12; i++ {
		companyId := int64(3) // neutral company
		if i <= 2 {
			companyId = 1 // prior employer
		}
		catalog.jobs[i] = &entity.JobPosting{
			Id:          i,
			CompanyId:   companyId,
			Title:       fmt.Sprintf("엔지니어 %d", i),
			CompanyName: fmt.Sprintf("회사%d", companyId),
			IsActive:    true,
		}
		hits = append(hits, entity.JobDistance{JobId: i, Distance: float64(i) * 0.05})
	}
	index := &stubIndex{hits: hits}

	llmStub := &stubLLM{
		summary:    "- 네이버 백엔드 -> 토스 인프라\n- Go 서버 개발 경험\n- Kubernetes 운영 경험",
		rerankJSON: `{"results":[{"job_idx":0,"job_title":"엔지니어 3","reason":"경력 일치"},{"job_idx":"1","job_title":"엔지니어 4","reason":"기술 일치"}]}`,
	}
	embedder := &stubEmbedder{}
	sessions := memory.NewSessionStore()

	p := NewPipeline(sessions, catalog, index, companies, llmStub, embedder, noopLogger{}, 10, 5,
		llm.WithTemperature(0.3))
	return &fixture{
		pipeline:  p,
		sessions:  sessions,
		catalog:   catalog,
		index:     index,
		companies: companies,
		llm:       llmStub,
		embedder:  embedder,
	}
}

type noopLogger struct{}

func (noopLogger) Debug(_, _ string, _ map[string]interface{}) {}
func (noopLogger) Info(_, _ string, _ map[string]interface{})  {}
func (noopLogger) Warn(_, _ string, _ map[string]interface{})  {}
func (noopLogger) Error(_, _ string, _ map[string]interface{}) {}
func (noopLogger) Sync() error                                 { return nil }

const resume = "저는 네이버에서 백엔드 서버를 개발했고 현재 Go와 Kubernetes를 다룹니다."

// --- tests ---

func TestSubmitResumeCheckpointsSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var streamed strings.Builder
	err := f.pipeline.SubmitResume(ctx, "s1", resume, func(token string) error {
		streamed.WriteString(token)
		return nil
	})
	if err != nil {
		t.Fatalf("SubmitResume: %v", err)
	}

	if streamed.String() != f.llm.summary {
		t.Errorf("streamed %q, want full summary", streamed.String())
	}

	state, err := f.sessions.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.Stage != store.StageAwaitingEmbed {
		t.Errorf("stage = %s, want %s", state.Stage, store.StageAwaitingEmbed)
	}
	if state.ResumeText != resume {
		t.Errorf("resume_text not persisted")
	}
	if len(state.SummarySentences) != 3 {
		t.Fatalf("sentences = %v, want 3", state.SummarySentences)
	}
	if state.SummarySentences[0] != "네이버 백엔드, 토스 인프라" {
		t.Errorf("career line not folded: %q", state.SummarySentences[0])
	}
	if len(state.ExcludedCompanyIds) != 1 || state.ExcludedCompanyIds[0] != 1 {
		t.Errorf("excluded = %v, want [1]", state.ExcludedCompanyIds)
	}
	if len(state.MessageHistory) != 2 ||
		state.MessageHistory[0].Role != "user" || state.MessageHistory[1].Role != "assistant" {
		t.Errorf("history = %v, want user+assistant turns", state.MessageHistory)
	}
}

func TestSubmitResumeEmptySummaryBlocksAdvance(t *testing.T) {
	f := newFixture()
	f.llm.summary = "요약할 내용이 없습니다."
	ctx := context.Background()

	err := f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	if KindOf(err) != KindUpstreamModel {
		t.Fatalf("kind = %v, want upstream_model_error (%v)", KindOf(err), err)
	}

	state, err := f.sessions.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.Stage != store.StageSummarizing {
		t.Errorf("stage = %s, want %s", state.Stage, store.StageSummarizing)
	}
	if state.ResumeText != resume {
		t.Errorf("resume_text lost on failed summary")
	}
}

func TestSubmitResumeSupersedesOldSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.pipeline.SubmitResume(ctx, "s1", resume, nil); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := f.pipeline.GetMatches(ctx, "s1"); err != nil {
		t.Fatalf("GetMatches: %v", err)
	}

	if err := f.pipeline.SubmitResume(ctx, "s1", resume, nil); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	state, _ := f.sessions.Load(ctx, "s1")
	if state.Stage != store.StageAwaitingEmbed {
		t.Errorf("stage = %s, want fresh %s", state.Stage, store.StageAwaitingEmbed)
	}
	if state.RerankedResults != nil {
		t.Errorf("old results survived supersede: %v", state.RerankedResults)
	}
}

func TestGetMatchesRequiresSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.pipeline.GetMatches(ctx, "unknown")
	if KindOf(err) != KindNotFound {
		t.Errorf("kind = %v, want not_found", KindOf(err))
	}

	// Park a session at SUMMARIZING (crashed mid-summary).
	f.llm.summary = "no bullets"
	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)

	_, err = f.pipeline.GetMatches(ctx, "s1")
	if KindOf(err) != KindPrecondition {
		t.Errorf("kind = %v, want precondition_failed", KindOf(err))
	}
}

func TestGetMatchesRunsToMatched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.pipeline.SubmitResume(ctx, "s1", resume, nil); err != nil {
		t.Fatalf("SubmitResume: %v", err)
	}

	results, err := f.pipeline.GetMatches(ctx, "s1")
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %v, want 2", results)
	}
	// job_idx 0/1 point into the retrieved list, which excludes the prior
	// employer's postings (jobs 1 and 2), so the picks are jobs 3 and 4.
	if results[0].JobId != 3 || results[1].JobId != 4 {
		t.Errorf("job ids = [%d %d], want [3 4]", results[0].JobId, results[1].JobId)
	}
	if results[0].Reason != "경력 일치" {
		t.Errorf("reason = %q", results[0].Reason)
	}

	state, _ := f.sessions.Load(ctx, "s1")
	if state.Stage != store.StageMatched {
		t.Errorf("stage = %s, want %s", state.Stage, store.StageMatched)
	}
	for _, r := range state.RetrievedJobs {
		if r.Job.CompanyId == 1 {
			t.Errorf("prior employer posting %d retrieved", r.Job.Id)
		}
	}
}

func TestGetMatchesIsIdempotentAfterMatched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	first, err := f.pipeline.GetMatches(ctx, "s1")
	if err != nil {
		t.Fatalf("first GetMatches: %v", err)
	}

	embeds, searches, jsons := f.embedder.calls, f.index.calls, f.llm.jsonCalls

	second, err := f.pipeline.GetMatches(ctx, "s1")
	if err != nil {
		t.Fatalf("second GetMatches: %v", err)
	}
	if len(second) != len(first) || second[0].JobId != first[0].JobId {
		t.Errorf("results changed between calls")
	}
	if f.embedder.calls != embeds || f.index.calls != searches || f.llm.jsonCalls != jsons {
		t.Errorf("backends were re-invoked on a MATCHED session")
	}
}

func TestGetMatchesResumesAfterRerankFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)

	f.llm.rerankErr = errors.New("model overloaded")
	_, err := f.pipeline.GetMatches(ctx, "s1")
	if KindOf(err) != KindUpstreamModel {
		t.Fatalf("kind = %v, want upstream_model_error", KindOf(err))
	}

	// Embedding and retrieval already checkpointed; the retry must reuse them.
	embeds, searches := f.embedder.calls, f.index.calls

	f.llm.rerankErr = nil
	results, err := f.pipeline.GetMatches(ctx, "s1")
	if err != nil {
		t.Fatalf("retry GetMatches: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results after retry")
	}
	if f.embedder.calls != embeds {
		t.Errorf("embedder re-invoked: %d -> %d", embeds, f.embedder.calls)
	}
	if f.index.calls != searches {
		t.Errorf("vector search re-invoked: %d -> %d", searches, f.index.calls)
	}
}

func TestGetMatchesRejectsInvalidRerankJSON(t *testing.T) {
	f := newFixture()
	f.llm.rerankJSON = "이건 JSON이 아닙니다"
	ctx := context.Background()

	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	_, err := f.pipeline.GetMatches(ctx, "s1")
	if KindOf(err) != KindUpstreamModel {
		t.Fatalf("kind = %v, want upstream_model_error", KindOf(err))
	}

	// Session stays at RERANKING so a retry repeats only the rerank call.
	state, _ := f.sessions.Load(ctx, "s1")
	if state.Stage != store.StageReranking {
		t.Errorf("stage = %s, want %s", state.Stage, store.StageReranking)
	}
}

func TestGenerateCoverLetter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	if _, err := f.pipeline.GetMatches(ctx, "s1"); err != nil {
		t.Fatalf("GetMatches: %v", err)
	}

	f.llm.summary = "자기소개서 본문입니다."
	var out strings.Builder
	err := f.pipeline.GenerateCoverLetter(ctx, "s1", 3, func(token string) error {
		out.WriteString(token)
		return nil
	})
	if err != nil {
		t.Fatalf("GenerateCoverLetter: %v", err)
	}
	if out.String() != "자기소개서 본문입니다." {
		t.Errorf("streamed %q", out.String())
	}

	// A second letter for another match must not disturb the checkpoint.
	before, _ := f.sessions.Load(ctx, "s1")
	if err := f.pipeline.GenerateCoverLetter(ctx, "s1", 4, nil); err != nil {
		t.Fatalf("second letter: %v", err)
	}
	after, _ := f.sessions.Load(ctx, "s1")
	if before.Stage != after.Stage || len(before.RerankedResults) != len(after.RerankedResults) {
		t.Errorf("cover letter mutated session state")
	}
}

func TestGenerateCoverLetterGuards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.pipeline.GenerateCoverLetter(ctx, "missing", 3, nil)
	if KindOf(err) != KindNotFound {
		t.Errorf("kind = %v, want not_found", KindOf(err))
	}

	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	err = f.pipeline.GenerateCoverLetter(ctx, "s1", 3, nil)
	if KindOf(err) != KindPrecondition {
		t.Errorf("kind = %v, want precondition_failed before MATCHED", KindOf(err))
	}

	if _, err := f.pipeline.GetMatches(ctx, "s1"); err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	err = f.pipeline.GenerateCoverLetter(ctx, "s1", 999, nil)
	if KindOf(err) != KindNotFound {
		t.Errorf("kind = %v, want not_found for a posting not in the catalog", KindOf(err))
	}
}

func TestGenerateCoverLetterNotLimitedToMatches(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	results, err := f.pipeline.GetMatches(ctx, "s1")
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	for _, r := range results {
		if r.JobId == 11 {
			t.Fatal("fixture broken: job 11 must be outside the reranked picks")
		}
	}

	// Any active posting is a valid target; the shortlist only bounds what
	// matching returned, not what the candidate may apply to.
	f.llm.summary = "공고 11에 대한 자기소개서입니다."
	var out strings.Builder
	err = f.pipeline.GenerateCoverLetter(ctx, "s1", 11, func(token string) error {
		out.WriteString(token)
		return nil
	})
	if err != nil {
		t.Fatalf("GenerateCoverLetter outside shortlist: %v", err)
	}
	if out.String() != "공고 11에 대한 자기소개서입니다." {
		t.Errorf("streamed %q", out.String())
	}
}

func TestGetMatchesKeepsValidRerankEntries(t *testing.T) {
	f := newFixture()
	// One unusable index must not cost the usable one.
	f.llm.rerankJSON = `{"results":[` +
		`{"job_idx":"abc","job_title":"잘못된 공고","reason":"비정수 인덱스"},` +
		`{"job_idx":0,"job_title":"엔지니어 3","reason":"경력 일치"}]}`
	ctx := context.Background()

	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	results, err := f.pipeline.GetMatches(ctx, "s1")
	if err != nil {
		t.Fatalf("GetMatches: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %v, want the single valid entry", results)
	}
	if results[0].JobId != 3 {
		t.Errorf("job id = %d, want 3", results[0].JobId)
	}

	state, _ := f.sessions.Load(ctx, "s1")
	if state.Stage != store.StageMatched {
		t.Errorf("stage = %s, want %s", state.Stage, store.StageMatched)
	}
}

func TestPipelineForwardsLLMOptions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	if _, err := f.pipeline.GetMatches(ctx, "s1"); err != nil {
		t.Fatalf("GetMatches: %v", err)
	}

	applied := &llm.Options{}
	for _, opt := range f.llm.lastOpts {
		opt(applied)
	}
	if applied.Temperature != 0.3 {
		t.Errorf("temperature = %v, want the configured 0.3", applied.Temperature)
	}
}

func TestResetClearsSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_ = f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	if err := f.pipeline.Reset(ctx, "s1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	_, err := f.sessions.Load(ctx, "s1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("load after reset = %v, want ErrNotFound", err)
	}
}

func TestConcurrentOperationRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	release, err := f.pipeline.acquire("s1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	err = f.pipeline.SubmitResume(ctx, "s1", resume, nil)
	if KindOf(err) != KindPrecondition {
		t.Errorf("kind = %v, want precondition_failed while busy", KindOf(err))
	}

	// Other sessions are unaffected.
	if err := f.pipeline.SubmitResume(ctx, "s2", resume, nil); err != nil {
		t.Errorf("unrelated session blocked: %v", err)
	}
}
