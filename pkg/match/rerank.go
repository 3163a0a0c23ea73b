package match

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"chapchap-be/pkg/store"
)

// jobIdx tolerates both JSON numbers and numeric strings, since models emit
// either form for the same prompt. Decoding never fails: a value that is not
// an integer marks the entry invalid so validation drops it without
// discarding the rest of the document.
type jobIdx struct {
	n  int
	ok bool
}

func (j *jobIdx) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		j.n, j.ok = n, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			j.n, j.ok = n, true
		}
	}
	return nil
}

type rerankItem struct {
	JobIdx   jobIdx `json:"job_idx"`
	JobTitle string `json:"job_title"`
	Reason   string `json:"reason"`
}

type rerankPayload struct {
	Results []rerankItem `json:"results"`
}

// ParseRerank decodes the rerank model's JSON output, tolerating markdown
// code fences around the document.
func ParseRerank(raw string) ([]rerankItem, error) {
	raw = stripJSONFence(raw)

	var payload rerankPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode rerank output: %w", err)
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("rerank output has no results array")
	}
	return payload.Results, nil
}

// ValidateRerank filters the model's picks against the retrieved set: a
// non-integer index, one outside [0, len) or one already used is dropped,
// order of the survivors is preserved, and at most max entries are kept.
// Validation never fails outright; an empty result is the caller's signal.
func ValidateRerank(items []rerankItem, retrieved []store.RetrievedJob, max int) []store.RankedResult {
	used := make(map[int]bool, len(items))

	results := make([]store.RankedResult, 0, max)
	for _, item := range items {
		if !item.JobIdx.ok {
			continue
		}
		idx := item.JobIdx.n
		if idx < 0 || idx >= len(retrieved) || used[idx] {
			continue
		}
		used[idx] = true

		hit := retrieved[idx]
		results = append(results, store.RankedResult{
			JobId:       hit.Job.Id,
			JobTitle:    hit.Job.Title,
			RankTitle:   strings.TrimSpace(item.JobTitle),
			CompanyName: hit.Job.CompanyName,
			Reason:      strings.TrimSpace(item.Reason),
			Similarity:  hit.Similarity,
		})
		if max > 0 && len(results) == max {
			break
		}
	}
	return results
}

func stripJSONFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
