package service

import (
	"context"
	"encoding/json"

	"chapchap-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	// PublishEmbedJob enqueues a recompute of one posting's embeddings.
	PublishEmbedJob(ctx context.Context, jobId int64) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishEmbedJob(_ context.Context, jobId int64) error {
	payload, err := json.Marshal(dto.PublishEmbedJobMessage{JobId: jobId})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
