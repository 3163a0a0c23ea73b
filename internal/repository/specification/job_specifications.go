package specification

import "gorm.io/gorm"

type ActiveOnly struct{}

func (ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type ByJobIds struct {
	Ids []int64
}

func (s ByJobIds) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.Ids)
}

type Paginate struct {
	Offset int
	Limit  int
}

func (s Paginate) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	return db
}
