package mapper

import (
	"encoding/json"

	"chapchap-be/internal/entity"
	"chapchap-be/internal/model"
)

type JobMapper struct{}

func NewJobMapper() *JobMapper {
	return &JobMapper{}
}

// ToEntity joins a job_info row with its qualification sentences into the
// catalog view the pipeline reads. Sentences must already be ordered by
// (type, sentence_index).
func (m *JobMapper) ToEntity(job *model.JobInfo, sentences []*model.JobQualificationSentence) *entity.JobPosting {
	posting := &entity.JobPosting{
		Id:               job.Id,
		Title:            job.JobTitle,
		CompanyId:        job.CompanyId,
		TeamInfo:         job.TeamInfo,
		Responsibilities: decodeStringList(job.Responsibilities),
		UploadedDate:     job.UploadedDate,
		IsActive:         job.IsActive,
	}

	if job.Company != nil {
		posting.CompanyName = job.Company.Name
	}
	if job.AffiliateCompany != nil {
		posting.AffiliateCompanyName = job.AffiliateCompany.Name
	}

	for _, tag := range job.Tags {
		if tag.Tag != nil {
			posting.Tags = append(posting.Tags, tag.Tag.Name)
		}
	}

	for _, s := range sentences {
		switch s.Type {
		case entity.SentenceTypeRequired:
			posting.Qualifications = append(posting.Qualifications, s.Sentence)
		case entity.SentenceTypePreferred:
			posting.PreferredQualifications = append(posting.PreferredQualifications, s.Sentence)
		}
	}

	return posting
}

func (m *JobMapper) SentenceToEntity(s *model.JobQualificationSentence) *entity.QualificationSentence {
	return &entity.QualificationSentence{
		JobId:         s.JobId,
		Type:          s.Type,
		SentenceIndex: s.SentenceIndex,
		Sentence:      s.Sentence,
		Embedding:     s.Embedding.Slice(),
	}
}

// decodeStringList tolerates missing or malformed JSON columns by returning
// an empty list.
func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}
