package store

import (
	"encoding/json"
	"fmt"
)

// EncodeField marshals one update value to JSON. Adapters share this so a
// snapshot written by one backend can be read by another.
func EncodeField(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode session field: %w", err)
	}
	return data, nil
}

// DecodeField unmarshals one stored field into the matching SessionState slot.
// Unknown fields are ignored so adapters tolerate schema drift.
func DecodeField(state *SessionState, field string, raw []byte) error {
	var target interface{}

	switch field {
	case FieldStage:
		target = &state.Stage
	case FieldResumeText:
		target = &state.ResumeText
	case FieldExcludedCompanyIds:
		target = &state.ExcludedCompanyIds
	case FieldSummarySentences:
		target = &state.SummarySentences
	case FieldSentenceEmbeddings:
		target = &state.SentenceEmbeddings
	case FieldAvgEmbedding:
		target = &state.AvgEmbedding
	case FieldRetrievedJobs:
		target = &state.RetrievedJobs
	case FieldRerankedResults:
		target = &state.RerankedResults
	case FieldMessageHistory:
		target = &state.MessageHistory
	default:
		return nil
	}

	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode session field %q: %w", field, err)
	}
	return nil
}

// Apply merges a partial update into a state snapshot through the shared
// codec, so in-memory merges behave exactly like the durable adapters.
func Apply(state *SessionState, update Update) error {
	for field, value := range update {
		raw, err := EncodeField(value)
		if err != nil {
			return err
		}
		if err := DecodeField(state, field, raw); err != nil {
			return err
		}
	}
	return nil
}
