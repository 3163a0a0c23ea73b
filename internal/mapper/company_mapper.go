package mapper

import (
	"chapchap-be/internal/entity"
	"chapchap-be/internal/model"
)

type CompanyMapper struct{}

func NewCompanyMapper() *CompanyMapper {
	return &CompanyMapper{}
}

func (m *CompanyMapper) ToEntity(c *model.Company) *entity.Company {
	company := &entity.Company{
		Id:   c.Id,
		Name: c.Name,
	}
	for _, alt := range c.AlternateNames {
		company.AlternateNames = append(company.AlternateNames, alt.AlternateName)
	}
	return company
}
