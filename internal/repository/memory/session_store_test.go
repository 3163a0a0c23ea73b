package memory

import (
	"context"
	"errors"
	"testing"

	"chapchap-be/pkg/store"
)

func TestSessionStoreMerge(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	err := s.Save(ctx, "s1", store.Update{
		store.FieldStage:      store.StageSummarizing,
		store.FieldResumeText: "이력서 본문",
	})
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}

	err = s.Save(ctx, "s1", store.Update{
		store.FieldStage:            store.StageAwaitingEmbed,
		store.FieldSummarySentences: []string{"Go 경험", "SQL 경험"},
	})
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	state, err := s.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.Stage != store.StageAwaitingEmbed {
		t.Errorf("stage = %s, want %s", state.Stage, store.StageAwaitingEmbed)
	}
	if state.ResumeText != "이력서 본문" {
		t.Errorf("earlier field lost in merge: %q", state.ResumeText)
	}
	if len(state.SummarySentences) != 2 {
		t.Errorf("sentences = %v", state.SummarySentences)
	}
}

func TestSessionStoreLoadCopiesOut(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	_ = s.Save(ctx, "s1", store.Update{store.FieldResumeText: "원본"})

	state, _ := s.Load(ctx, "s1")
	state.ResumeText = "변조"

	again, _ := s.Load(ctx, "s1")
	if again.ResumeText != "원본" {
		t.Errorf("caller mutation leaked into store: %q", again.ResumeText)
	}
}

func TestSessionStoreClear(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	_ = s.Save(ctx, "s1", store.Update{store.FieldStage: store.StageMatched})
	if err := s.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	_, err := s.Load(ctx, "s1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// Clearing an absent session is not an error.
	if err := s.Clear(ctx, "missing"); err != nil {
		t.Errorf("Clear missing: %v", err)
	}
}
