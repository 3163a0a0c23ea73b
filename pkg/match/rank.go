package match

import (
	"sort"

	"chapchap-be/internal/entity"
	"chapchap-be/pkg/store"
)

// Rank joins vector-index hits with their catalog postings, drops every
// posting from an excluded company (its affiliate group shares the company
// id), converts cosine distance to similarity and returns the top limit
// results. Ordering is total: similarity descending, job id ascending on
// ties, so equal inputs always rank identically.
func Rank(hits []entity.JobDistance, jobs []*entity.JobPosting, excludedCompanyIds []int64, limit int) []store.RetrievedJob {
	byId := make(map[int64]*entity.JobPosting, len(jobs))
	for _, job := range jobs {
		byId[job.Id] = job
	}

	excluded := make(map[int64]bool, len(excludedCompanyIds))
	for _, id := range excludedCompanyIds {
		excluded[id] = true
	}

	results := make([]store.RetrievedJob, 0, len(hits))
	for _, hit := range hits {
		job, ok := byId[hit.JobId]
		if !ok || excluded[job.CompanyId] {
			continue
		}
		results = append(results, store.RetrievedJob{
			Job:        *job,
			Distance:   hit.Distance,
			Similarity: 1 - hit.Distance,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Job.Id < results[j].Job.Id
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
