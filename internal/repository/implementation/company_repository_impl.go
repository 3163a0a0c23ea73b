package implementation

import (
	"context"

	"chapchap-be/internal/entity"
	"chapchap-be/internal/mapper"
	"chapchap-be/internal/model"
	"chapchap-be/internal/repository/contract"

	"gorm.io/gorm"
)

type CompanyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CompanyMapper
}

func NewCompanyRepository(db *gorm.DB) contract.CompanyRepository {
	return &CompanyRepositoryImpl{
		db:     db,
		mapper: mapper.NewCompanyMapper(),
	}
}

func (r *CompanyRepositoryImpl) FindAllWithAlternates(ctx context.Context) ([]*entity.Company, error) {
	var models []*model.Company
	err := r.db.WithContext(ctx).
		Preload("AlternateNames").
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	companies := make([]*entity.Company, len(models))
	for i, m := range models {
		companies[i] = r.mapper.ToEntity(m)
	}
	return companies, nil
}
