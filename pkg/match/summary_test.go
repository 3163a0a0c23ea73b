package match

import (
	"testing"
)

func TestParseSummarySentences(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		want    []string
	}{
		{
			name:    "empty output",
			summary: "",
			want:    nil,
		},
		{
			name:    "no bullet lines",
			summary: "지원자는 뛰어난 개발자입니다.\n추천합니다.",
			want:    nil,
		},
		{
			name:    "dash bullets",
			summary: "- Java 및 Spring 개발 경험\n- AWS 운영 경험",
			want:    []string{"Java 및 Spring 개발 경험", "AWS 운영 경험"},
		},
		{
			name:    "mixed markers and noise",
			summary: "요약:\n* Kubernetes 운영 경험\n\n• NLP 솔루션 경험\n끝.",
			want:    []string{"Kubernetes 운영 경험", "NLP 솔루션 경험"},
		},
		{
			name:    "career line arrows folded",
			summary: "- 카이스트 학부 -> 크래프톤 (프론트엔드) -> 토스 (DevOps)\n- React 경험",
			want:    []string{"카이스트 학부, 크래프톤 (프론트엔드), 토스 (DevOps)", "React 경험"},
		},
		{
			name:    "unicode arrow",
			summary: "- 서울대 → 네이버",
			want:    []string{"서울대, 네이버"},
		},
		{
			name:    "indented bullets",
			summary: "  - 광고 도메인 경험  \n\t- MLOps 파이프라인 구축",
			want:    []string{"광고 도메인 경험", "MLOps 파이프라인 구축"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSummarySentences(tt.summary)

			if len(got) != len(tt.want) {
				t.Fatalf("sentence count = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
