package model

import "time"

type Company struct {
	Id             int64                  `gorm:"primaryKey;autoIncrement"`
	Name           string                 `gorm:"type:varchar(255);uniqueIndex;not null"`
	AlternateNames []CompanyAlternateName `gorm:"foreignKey:CompanyId"`
	CreatedAt      time.Time              `gorm:"autoCreateTime"`
	UpdatedAt      time.Time              `gorm:"autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}

type CompanyAlternateName struct {
	Id            int64  `gorm:"primaryKey;autoIncrement"`
	CompanyId     int64  `gorm:"not null;index;uniqueIndex:idx_company_alternate"`
	AlternateName string `gorm:"type:varchar(255);not null;uniqueIndex:idx_company_alternate"`
}

func (CompanyAlternateName) TableName() string {
	return "company_alternate_names"
}

type AffiliateCompany struct {
	Id              int64  `gorm:"primaryKey;autoIncrement"`
	Name            string `gorm:"type:varchar(255);uniqueIndex;not null"`
	ParentCompanyId int64  `gorm:"not null;index"`
}

func (AffiliateCompany) TableName() string {
	return "affiliate_companies"
}
