package service

import (
	"context"

	"chapchap-be/internal/dto"
	"chapchap-be/pkg/llm"
	"chapchap-be/pkg/match"
)

type IMatchService interface {
	// AnalyzeResume starts a fresh session from raw resume text, streaming
	// the summary through onToken.
	AnalyzeResume(ctx context.Context, sessionId, resumeText string, onToken llm.TokenHandler) error

	// GetMatches resumes the pipeline to completion and returns the ranked
	// results.
	GetMatches(ctx context.Context, sessionId string) (*dto.MatchesResponse, error)

	// StreamCoverLetter streams a cover letter for one matched posting.
	StreamCoverLetter(ctx context.Context, sessionId string, jobId int64, onToken llm.TokenHandler) error

	// ResetSession discards the session's pipeline state.
	ResetSession(ctx context.Context, sessionId string) error
}

type matchService struct {
	pipeline *match.Pipeline
}

func NewMatchService(pipeline *match.Pipeline) IMatchService {
	return &matchService{pipeline: pipeline}
}

func (s *matchService) AnalyzeResume(ctx context.Context, sessionId, resumeText string, onToken llm.TokenHandler) error {
	return s.pipeline.SubmitResume(ctx, sessionId, resumeText, onToken)
}

func (s *matchService) GetMatches(ctx context.Context, sessionId string) (*dto.MatchesResponse, error) {
	results, err := s.pipeline.GetMatches(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	res := &dto.MatchesResponse{
		SessionId: sessionId,
		Results:   make([]dto.RankedJobResponse, len(results)),
	}
	for i, r := range results {
		res.Results[i] = dto.RankedJobResponse{
			JobId:       r.JobId,
			JobTitle:    r.JobTitle,
			CompanyName: r.CompanyName,
			Reason:      r.Reason,
			Similarity:  r.Similarity,
		}
	}
	return res, nil
}

func (s *matchService) StreamCoverLetter(ctx context.Context, sessionId string, jobId int64, onToken llm.TokenHandler) error {
	return s.pipeline.GenerateCoverLetter(ctx, sessionId, jobId, onToken)
}

func (s *matchService) ResetSession(ctx context.Context, sessionId string) error {
	return s.pipeline.Reset(ctx, sessionId)
}
