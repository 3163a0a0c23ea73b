package dto

import "time"

type JobResponse struct {
	Id                      int64     `json:"id"`
	Title                   string    `json:"title"`
	CompanyName             string    `json:"company_name"`
	AffiliateCompanyName    string    `json:"affiliate_company_name,omitempty"`
	TeamInfo                string    `json:"team_info,omitempty"`
	Responsibilities        []string  `json:"responsibilities"`
	Qualifications          []string  `json:"qualifications"`
	PreferredQualifications []string  `json:"preferred_qualifications"`
	Tags                    []string  `json:"tags"`
	UploadedDate            time.Time `json:"uploaded_date"`
}

type JobListResponse struct {
	Jobs   []JobResponse `json:"jobs"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}
