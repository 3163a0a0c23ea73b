package dto

type AnalyzeResumeRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=50"`
}

type RankedJobResponse struct {
	JobId       int64   `json:"job_id"`
	JobTitle    string  `json:"job_title"`
	CompanyName string  `json:"company_name"`
	Reason      string  `json:"reason"`
	Similarity  float64 `json:"similarity"`
}

type MatchesResponse struct {
	SessionId string              `json:"session_id"`
	Results   []RankedJobResponse `json:"results"`
}

// PublishEmbedJobMessage is the watermill payload that asks the consumer to
// recompute one posting's sentence embeddings and centroid.
type PublishEmbedJobMessage struct {
	JobId int64 `json:"job_id"`
}
