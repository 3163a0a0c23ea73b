package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "JOB_SENTENCES_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic wrapper the subscriber reconstructs from the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// JobSentencesUpdated is emitted by the scraping side after it rewrites a
// posting's qualification sentences, signalling that the posting's
// embeddings are stale.
type JobSentencesUpdated struct {
	JobId      int64
	OccurredAt time.Time
}

func NewJobSentencesUpdated(jobId int64) JobSentencesUpdated {
	return JobSentencesUpdated{JobId: jobId, OccurredAt: time.Now()}
}

func (e JobSentencesUpdated) EventType() string {
	return "JOB_SENTENCES_UPDATED"
}

func (e JobSentencesUpdated) Payload() map[string]interface{} {
	return map[string]interface{}{
		"job_id": e.JobId,
	}
}

func (e JobSentencesUpdated) Timestamp() time.Time {
	return e.OccurredAt
}
