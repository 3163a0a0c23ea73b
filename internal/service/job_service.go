package service

import (
	"context"

	"chapchap-be/internal/dto"
	"chapchap-be/internal/entity"
	"chapchap-be/internal/repository/contract"
	"chapchap-be/pkg/match"
)

type IJobService interface {
	GetActive(ctx context.Context, offset, limit int) (*dto.JobListResponse, error)
	GetById(ctx context.Context, id int64) (*dto.JobResponse, error)
}

type jobService struct {
	jobs contract.JobRepository
}

func NewJobService(jobs contract.JobRepository) IJobService {
	return &jobService{jobs: jobs}
}

func (s *jobService) GetActive(ctx context.Context, offset, limit int) (*dto.JobListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	jobs, err := s.jobs.FindActive(ctx, offset, limit)
	if err != nil {
		return nil, match.StoreError("list active postings", err)
	}

	res := &dto.JobListResponse{
		Jobs:   make([]dto.JobResponse, len(jobs)),
		Offset: offset,
		Limit:  limit,
	}
	for i, job := range jobs {
		res.Jobs[i] = toJobResponse(job)
	}
	return res, nil
}

func (s *jobService) GetById(ctx context.Context, id int64) (*dto.JobResponse, error) {
	job, err := s.jobs.FindActiveById(ctx, id)
	if err != nil {
		return nil, match.StoreError("load posting", err)
	}
	if job == nil {
		return nil, match.NotFoundError("posting not found")
	}

	res := toJobResponse(job)
	return &res, nil
}

func toJobResponse(job *entity.JobPosting) dto.JobResponse {
	return dto.JobResponse{
		Id:                      job.Id,
		Title:                   job.Title,
		CompanyName:             job.CompanyName,
		AffiliateCompanyName:    job.AffiliateCompanyName,
		TeamInfo:                job.TeamInfo,
		Responsibilities:        job.Responsibilities,
		Qualifications:          job.Qualifications,
		PreferredQualifications: job.PreferredQualifications,
		Tags:                    job.Tags,
		UploadedDate:            job.UploadedDate,
	}
}
