package match

import (
	"testing"

	"chapchap-be/internal/entity"
)

func posting(id, companyId int64, title string) *entity.JobPosting {
	return &entity.JobPosting{Id: id, CompanyId: companyId, Title: title, IsActive: true}
}

func TestRank(t *testing.T) {
	jobs := []*entity.JobPosting{
		posting(10, 1, "백엔드 엔지니어"),
		posting(11, 2, "프론트엔드 엔지니어"),
		posting(12, 2, "DevOps 엔지니어"),
		posting(13, 3, "데이터 엔지니어"),
	}

	t.Run("similarity conversion and ordering", func(t *testing.T) {
		hits := []entity.JobDistance{
			{JobId: 10, Distance: 0.4},
			{JobId: 11, Distance: 0.1},
			{JobId: 13, Distance: 0.2},
		}

		got := Rank(hits, jobs, nil, 10)

		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		if got[0].Job.Id != 11 || got[1].Job.Id != 13 || got[2].Job.Id != 10 {
			t.Errorf("order = [%d %d %d], want [11 13 10]", got[0].Job.Id, got[1].Job.Id, got[2].Job.Id)
		}
		if got[0].Similarity != 0.9 {
			t.Errorf("similarity = %v, want 0.9", got[0].Similarity)
		}
		if got[0].Distance != 0.1 {
			t.Errorf("distance = %v, want 0.1", got[0].Distance)
		}
	})

	t.Run("equal similarity breaks ties by job id", func(t *testing.T) {
		hits := []entity.JobDistance{
			{JobId: 13, Distance: 0.3},
			{JobId: 10, Distance: 0.3},
		}

		got := Rank(hits, jobs, nil, 10)

		if got[0].Job.Id != 10 || got[1].Job.Id != 13 {
			t.Errorf("order = [%d %d], want [10 13]", got[0].Job.Id, got[1].Job.Id)
		}
	})

	t.Run("excluded companies are dropped", func(t *testing.T) {
		hits := []entity.JobDistance{
			{JobId: 10, Distance: 0.5},
			{JobId: 11, Distance: 0.1},
			{JobId: 12, Distance: 0.2},
		}

		got := Rank(hits, jobs, []int64{2}, 10)

		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if got[0].Job.Id != 10 {
			t.Errorf("survivor = %d, want 10", got[0].Job.Id)
		}
	})

	t.Run("hits without a catalog row are skipped", func(t *testing.T) {
		hits := []entity.JobDistance{
			{JobId: 999, Distance: 0.01},
			{JobId: 10, Distance: 0.5},
		}

		got := Rank(hits, jobs, nil, 10)

		if len(got) != 1 || got[0].Job.Id != 10 {
			t.Errorf("got %v, want only job 10", got)
		}
	})

	t.Run("limit caps the result", func(t *testing.T) {
		hits := []entity.JobDistance{
			{JobId: 10, Distance: 0.1},
			{JobId: 11, Distance: 0.2},
			{JobId: 12, Distance: 0.3},
		}

		got := Rank(hits, jobs, nil, 2)

		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Job.Id != 10 || got[1].Job.Id != 11 {
			t.Errorf("order = [%d %d], want [10 11]", got[0].Job.Id, got[1].Job.Id)
		}
	})
}
