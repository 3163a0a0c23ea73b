package match

import (
	"testing"

	"chapchap-be/internal/entity"
	"chapchap-be/pkg/store"
)

func retrievedSet() []store.RetrievedJob {
	return []store.RetrievedJob{
		{Job: entity.JobPosting{Id: 100, Title: "백엔드", CompanyName: "네이버"}, Similarity: 0.9},
		{Job: entity.JobPosting{Id: 101, Title: "프론트엔드", CompanyName: "토스"}, Similarity: 0.8},
		{Job: entity.JobPosting{Id: 102, Title: "DevOps", CompanyName: "크래프톤"}, Similarity: 0.7},
	}
}

func idx(n int) jobIdx {
	return jobIdx{n: n, ok: true}
}

func TestParseRerank(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
	}{
		{
			name:    "numeric indices",
			raw:     `{"results":[{"job_idx":0,"job_title":"백엔드","reason":"경력 일치"}]}`,
			wantLen: 1,
		},
		{
			name:    "string indices",
			raw:     `{"results":[{"job_idx":"2","job_title":"DevOps","reason":"인프라 경험"}]}`,
			wantLen: 1,
		},
		{
			name: "markdown fenced",
			raw: "```json\n" +
				`{"results":[{"job_idx":1,"job_title":"프론트엔드","reason":"적합"}]}` +
				"\n```",
			wantLen: 1,
		},
		{
			name:    "empty results array",
			raw:     `{"results":[]}`,
			wantLen: 0,
		},
		{
			name:    "non-integer index parses without error",
			raw:     `{"results":[{"job_idx":"first","job_title":"x","reason":"y"}]}`,
			wantLen: 1,
		},
		{
			name:    "missing results key",
			raw:     `{"items":[]}`,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     "죄송합니다, JSON을 만들 수 없습니다.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ParseRerank(tt.raw)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", items)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(items), tt.wantLen)
			}
		})
	}
}

func TestJobIdxUnmarshal(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantN  int
		wantOk bool
	}{
		{name: "number", raw: `1`, wantN: 1, wantOk: true},
		{name: "numeric string", raw: `"2"`, wantN: 2, wantOk: true},
		{name: "padded numeric string", raw: `" 3 "`, wantN: 3, wantOk: true},
		{name: "word string", raw: `"abc"`, wantOk: false},
		{name: "fractional number", raw: `1.5`, wantOk: false},
		{name: "null", raw: `null`, wantOk: false},
		{name: "object", raw: `{"v":1}`, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var j jobIdx
			if err := j.UnmarshalJSON([]byte(tt.raw)); err != nil {
				t.Fatalf("UnmarshalJSON must never fail, got %v", err)
			}
			if j.ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", j.ok, tt.wantOk)
			}
			if j.ok && j.n != tt.wantN {
				t.Errorf("n = %d, want %d", j.n, tt.wantN)
			}
		})
	}
}

func TestValidateRerank(t *testing.T) {
	retrieved := retrievedSet()

	t.Run("valid picks keep model order", func(t *testing.T) {
		items := []rerankItem{
			{JobIdx: idx(2), JobTitle: "DevOps", Reason: "인프라 경험"},
			{JobIdx: idx(0), JobTitle: "백엔드", Reason: "경력 일치"},
		}

		got := ValidateRerank(items, retrieved, 5)

		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].JobId != 102 || got[1].JobId != 100 {
			t.Errorf("order = [%d %d], want [102 100]", got[0].JobId, got[1].JobId)
		}
		if got[0].CompanyName != "크래프톤" || got[0].Similarity != 0.7 {
			t.Errorf("entry not enriched from retrieved set: %+v", got[0])
		}
		if got[0].RankTitle != "DevOps" || got[0].Reason != "인프라 경험" {
			t.Errorf("model fields lost: %+v", got[0])
		}
	})

	t.Run("one bad index drops only its own entry", func(t *testing.T) {
		items, err := ParseRerank(
			`{"results":[{"job_idx":"abc","job_title":"x","reason":"비정수"},` +
				`{"job_idx":0,"job_title":"백엔드","reason":"경력 일치"}]}`)
		if err != nil {
			t.Fatalf("ParseRerank: %v", err)
		}

		got := ValidateRerank(items, retrieved, 5)

		if len(got) != 1 {
			t.Fatalf("len = %d, want 1 (%v)", len(got), got)
		}
		if got[0].JobId != 100 {
			t.Errorf("survivor = %d, want 100", got[0].JobId)
		}
	})

	t.Run("out of range and duplicate indices dropped", func(t *testing.T) {
		items := []rerankItem{
			{JobIdx: idx(-1), Reason: "음수"},
			{JobIdx: idx(9999), Reason: "범위 밖"},
			{JobIdx: idx(1), Reason: "첫 선택"},
			{JobIdx: idx(1), Reason: "중복"},
		}

		got := ValidateRerank(items, retrieved, 5)

		if len(got) != 1 {
			t.Fatalf("len = %d, want 1 (%v)", len(got), got)
		}
		if got[0].JobId != 101 || got[0].Reason != "첫 선택" {
			t.Errorf("survivor = %+v, want job 101 with first reason", got[0])
		}
	})

	t.Run("max caps survivors", func(t *testing.T) {
		items := []rerankItem{
			{JobIdx: idx(0)}, {JobIdx: idx(1)}, {JobIdx: idx(2)},
		}

		got := ValidateRerank(items, retrieved, 2)

		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
	})

	t.Run("empty retrieved set yields nothing", func(t *testing.T) {
		got := ValidateRerank([]rerankItem{{JobIdx: idx(0)}}, nil, 5)
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})
}
