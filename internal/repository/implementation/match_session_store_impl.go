package implementation

import (
	"context"
	"errors"
	"fmt"

	"chapchap-be/internal/model"
	"chapchap-be/pkg/store"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchSessionStoreImpl is the durable postgres adapter of store.SessionStore.
// One row per session; Save upserts only the columns named in the update.
type MatchSessionStoreImpl struct {
	db *gorm.DB
}

func NewMatchSessionStore(db *gorm.DB) store.SessionStore {
	return &MatchSessionStoreImpl{db: db}
}

func (s *MatchSessionStoreImpl) Load(ctx context.Context, sessionId string) (*store.SessionState, error) {
	var row model.MatchSession
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("load session %s: %w", sessionId, err)
	}

	state := &store.SessionState{
		SessionId:  sessionId,
		Stage:      store.Stage(row.Stage),
		ResumeText: row.ResumeText,
	}

	jsonColumns := map[string][]byte{
		store.FieldExcludedCompanyIds: []byte(row.ExcludedCompanyIds),
		store.FieldSummarySentences:   []byte(row.SummarySentences),
		store.FieldSentenceEmbeddings: []byte(row.SentenceEmbeddings),
		store.FieldAvgEmbedding:       []byte(row.AvgEmbedding),
		store.FieldRetrievedJobs:      []byte(row.RetrievedJobs),
		store.FieldRerankedResults:    []byte(row.RerankedResults),
		store.FieldMessageHistory:     []byte(row.MessageHistory),
	}
	for field, raw := range jsonColumns {
		if err := store.DecodeField(state, field, raw); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func (s *MatchSessionStoreImpl) Save(ctx context.Context, sessionId string, update store.Update) error {
	if len(update) == 0 {
		return nil
	}

	assignments := make(map[string]interface{}, len(update))
	for field, value := range update {
		switch field {
		case store.FieldStage:
			assignments[field] = fmt.Sprintf("%v", value)
		case store.FieldResumeText:
			text, ok := value.(string)
			if !ok {
				return fmt.Errorf("resume_text update must be a string, got %T", value)
			}
			assignments[field] = text
		default:
			raw, err := store.EncodeField(value)
			if err != nil {
				return err
			}
			assignments[field] = datatypes.JSON(raw)
		}
	}

	row := &model.MatchSession{SessionId: sessionId, Stage: string(store.StageInit)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).Create(row).Error; err != nil {
			return err
		}
		return tx.Model(&model.MatchSession{}).
			Where("session_id = ?", sessionId).
			Updates(assignments).Error
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", sessionId, err)
	}
	return nil
}

func (s *MatchSessionStoreImpl) Clear(ctx context.Context, sessionId string) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Delete(&model.MatchSession{}).Error
	if err != nil {
		return fmt.Errorf("clear session %s: %w", sessionId, err)
	}
	return nil
}
