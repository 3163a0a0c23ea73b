package service

import (
	"context"
	"encoding/json"
	"log"

	"chapchap-be/internal/dto"
	"chapchap-be/internal/repository/contract"
	"chapchap-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error

	// EmbedJob recomputes one posting's embeddings synchronously. The CLI
	// backfill drives it directly, bypassing the queue.
	EmbedJob(ctx context.Context, jobId int64) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	jobs              contract.JobRepository
	jobEmbeddings     contract.JobEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	jobs contract.JobRepository,
	jobEmbeddings contract.JobEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		jobs:              jobs,
		jobEmbeddings:     jobEmbeddings,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding recompute for JobId: %d", payload.JobId)

	if err := cs.EmbedJob(ctx, payload.JobId); err != nil {
		log.Printf("[ERROR] Failed to embed job %d: %v", payload.JobId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

// EmbedJob embeds every qualification sentence of one posting in a single
// batch, writes them back and upserts the posting's centroid vector.
func (cs *consumerService) EmbedJob(ctx context.Context, jobId int64) error {
	sentences, err := cs.jobs.FindSentencesByJobId(ctx, jobId)
	if err != nil {
		return err
	}
	if len(sentences) == 0 {
		log.Printf("[WARN] Job %d has no qualification sentences, skipping", jobId)
		return nil
	}

	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Sentence
	}

	vectors, err := cs.embeddingProvider.GenerateBatch(ctx, texts)
	if err != nil {
		return err
	}

	for i, s := range sentences {
		s.Embedding = vectors[i]
		if err := cs.jobs.UpdateSentenceEmbedding(ctx, s); err != nil {
			return err
		}
	}

	return cs.jobEmbeddings.Upsert(ctx, jobId, embedding.Centroid(vectors))
}
