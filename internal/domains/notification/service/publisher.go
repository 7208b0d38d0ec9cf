package service

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"afristay/config"
	"afristay/infras/kafka"
	"afristay/infras/otel"
	"afristay/internal/domains/notification/model"
	"afristay/shared/constant"
	"afristay/shared/timezone"

	"github.com/rs/zerolog/log"
)

var ErrNoRecipient = errors.New("notification has no recipient")

// Publisher queues notifications for the worker.
type Publisher interface {
	Publish(ctx context.Context, message model.Message) error
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, message model.Message) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(message.To) == 0 {
		return ErrNoRecipient
	}

	if message.QueuedAt.IsZero() {
		message.QueuedAt = timezone.Now()
	}

	err = p.client.SendMessages(ctx, p.cfg.Kafka.NotificationTopic, kafka.Message{
		Key:   message.Key(),
		Value: message,
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(message.Kind)).Str("reference", message.ReferenceID).Msg("failed to queue notification")

		return fmt.Errorf("failed to queue notification: %w", err)
	}

	return nil
}
