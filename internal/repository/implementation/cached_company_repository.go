package implementation

import (
	"context"
	"time"

	"chapchap-be/internal/entity"
	"chapchap-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

const companyDirectoryKey = "company_directory"

// CachedCompanyRepository caches the full company directory. The exclusion
// scan reads it on every resume submit and the directory only changes when a
// scraper onboards a new company.
type CachedCompanyRepository struct {
	inner contract.CompanyRepository
	cache *cache.Cache
}

func NewCachedCompanyRepository(inner contract.CompanyRepository, ttl time.Duration) contract.CompanyRepository {
	return &CachedCompanyRepository{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *CachedCompanyRepository) FindAllWithAlternates(ctx context.Context) ([]*entity.Company, error) {
	if x, found := r.cache.Get(companyDirectoryKey); found {
		return x.([]*entity.Company), nil
	}

	companies, err := r.inner.FindAllWithAlternates(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.Set(companyDirectoryKey, companies, cache.DefaultExpiration)
	return companies, nil
}
