package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"chapchap-be/pkg/events"
	pktNats "chapchap-be/pkg/nats"
)

// IJobEventService bridges scraper-side NATS events into the in-process
// embedding queue: a JOB_SENTENCES_UPDATED event becomes one embed-job
// message on the watermill topic.
type IJobEventService interface {
	Start() error
}

type jobEventService struct {
	subscriber *pktNats.Subscriber
	publisher  IPublisherService
	eventName  string
}

func NewJobEventService(subscriber *pktNats.Subscriber, publisher IPublisherService, eventName string) IJobEventService {
	return &jobEventService{
		subscriber: subscriber,
		publisher:  publisher,
		eventName:  eventName,
	}
}

func (s *jobEventService) Start() error {
	subject := fmt.Sprintf("events.%s", s.eventName)
	return s.subscriber.Subscribe(subject, "job-embedding-worker", s.handle)
}

func (s *jobEventService) handle(ctx context.Context, event events.Event) error {
	jobId, ok := numericPayloadField(event.Payload(), "job_id")
	if !ok {
		// Malformed events are dropped, not retried.
		log.Printf("[WARN] Event %s missing job_id, ignoring", event.EventType())
		return nil
	}
	return s.publisher.PublishEmbedJob(ctx, jobId)
}

func numericPayloadField(payload map[string]interface{}, key string) (int64, bool) {
	raw, ok := payload[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
