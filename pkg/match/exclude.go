package match

import (
	"sort"
	"strings"

	"chapchap-be/internal/entity"
)

// ExcludedCompanyIds scans the raw resume text for every company whose
// canonical or alternate name appears as a case-insensitive substring.
// Returned ids are deduplicated and sorted ascending so two runs over the
// same resume checkpoint identically.
func ExcludedCompanyIds(resumeText string, companies []*entity.Company) []int64 {
	haystack := strings.ToLower(resumeText)

	seen := make(map[int64]bool)
	for _, company := range companies {
		if matchesCompany(haystack, company) {
			seen[company.Id] = true
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func matchesCompany(haystack string, company *entity.Company) bool {
	names := append([]string{company.Name}, company.AlternateNames...)
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if strings.Contains(haystack, name) {
			return true
		}
	}
	return false
}
