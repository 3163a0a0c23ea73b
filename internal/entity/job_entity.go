package entity

import "time"

// JobPosting is the read-only catalog view the pipeline works with: the
// job_info row joined with its company and qualification sentences.
type JobPosting struct {
	Id                      int64
	Title                   string
	CompanyId               int64
	CompanyName             string
	AffiliateCompanyName    string
	TeamInfo                string
	Responsibilities        []string
	Qualifications          []string
	PreferredQualifications []string
	Tags                    []string
	UploadedDate            time.Time
	IsActive                bool
}

// QualificationSentence is one embedded line of a posting, ordered by
// SentenceIndex within its type.
type QualificationSentence struct {
	JobId         int64
	Type          string // "required", "preferred" or "title"
	SentenceIndex int
	Sentence      string
	Embedding     []float32
}

const (
	SentenceTypeRequired  = "required"
	SentenceTypePreferred = "preferred"
	SentenceTypeTitle     = "title"
)

// JobDistance is a nearest-neighbour hit from the vector index.
type JobDistance struct {
	JobId    int64
	Distance float64
}
