package model

import (
	"time"

	"gorm.io/datatypes"
)

type JobInfo struct {
	Id                 int64             `gorm:"primaryKey;autoIncrement"`
	CompanyId          int64             `gorm:"not null;index"`
	Company            *Company          `gorm:"foreignKey:CompanyId"`
	AffiliateCompanyId int64             `gorm:"index"`
	AffiliateCompany   *AffiliateCompany `gorm:"foreignKey:AffiliateCompanyId"`
	Link               string            `gorm:"type:varchar(512);uniqueIndex;not null"`
	JobTitle           string            `gorm:"type:varchar(255);not null"`
	TeamInfo           string            `gorm:"type:text"`
	Responsibilities   datatypes.JSON    `gorm:"type:jsonb"`
	HiringProcess      datatypes.JSON    `gorm:"type:jsonb"`
	AdditionalInfo     datatypes.JSON    `gorm:"type:jsonb"`
	UploadedDate       time.Time
	IsActive           bool      `gorm:"default:true;index"`
	Tags               []JobTag  `gorm:"foreignKey:JobId"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (JobInfo) TableName() string {
	return "job_info"
}

type Tag struct {
	Id   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(128);uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

type JobTag struct {
	JobId int64 `gorm:"primaryKey"`
	TagId int64 `gorm:"primaryKey"`
	Tag   *Tag  `gorm:"foreignKey:TagId"`
}

func (JobTag) TableName() string {
	return "job_tags"
}
