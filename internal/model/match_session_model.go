package model

import (
	"time"

	"gorm.io/datatypes"
)

// MatchSession is one pipeline checkpoint row. Every stage transition merges
// the fields it produced; columns not in the update stay untouched.
type MatchSession struct {
	SessionId          string `gorm:"type:varchar(128);primaryKey"`
	Stage              string `gorm:"type:varchar(32);not null"`
	ResumeText         string `gorm:"type:text"`
	ExcludedCompanyIds datatypes.JSON `gorm:"type:jsonb"`
	SummarySentences   datatypes.JSON `gorm:"type:jsonb"`
	SentenceEmbeddings datatypes.JSON `gorm:"type:jsonb"`
	AvgEmbedding       datatypes.JSON `gorm:"type:jsonb"`
	RetrievedJobs      datatypes.JSON `gorm:"type:jsonb"`
	RerankedResults    datatypes.JSON `gorm:"type:jsonb"`
	MessageHistory     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
}

func (MatchSession) TableName() string {
	return "match_sessions"
}
