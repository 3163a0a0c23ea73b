package contract

import (
	"context"

	"chapchap-be/internal/entity"
)

// CompanyRepository exposes the company directory used for the exclusion
// scan: every company id with its canonical and alternate names.
type CompanyRepository interface {
	FindAllWithAlternates(ctx context.Context) ([]*entity.Company, error)
}
