package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"afristay/config"
	"afristay/infras/kafka"
	"afristay/infras/mailer"
	"afristay/infras/otel"
	"afristay/internal/domains/notification/model"
	"afristay/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

var (
	ErrUnknownKind        = errors.New("unknown notification kind")
	ErrEmptyPayload       = errors.New("notification payload is missing")
	ErrDeliveryExhausted  = errors.New("notification delivery attempts exhausted")
	errPermanentRejection = mailer.ErrRelayNotConfigured
)

// Dispatcher consumes queued notifications and delivers them through the mail relay.
type Dispatcher interface {
	Run(ctx context.Context) error
	Handle(ctx context.Context, message kafkaGo.Message) error
}

type dispatcherImpl struct {
	client kafka.Client
	mailer mailer.Mailer
	cfg    *config.Config
	otel   otel.Otel
}

func NewDispatcher(client kafka.Client, mailer mailer.Mailer, cfg *config.Config, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		client: client,
		mailer: mailer,
		cfg:    cfg,
		otel:   otel,
	}
}

// Run blocks until ctx is cancelled or the consumer fails.
func (d *dispatcherImpl) Run(ctx context.Context) error {
	log.Info().Str("topic", d.cfg.Kafka.NotificationTopic).Msg("notification dispatcher started")

	return d.client.Consume(ctx, d.cfg.Kafka.ConsumerGroup, d.cfg.Kafka.NotificationTopic, d.Handle) //nolint:wrapcheck
}

// Handle delivers one message. Undeliverable messages return an error and are dropped by the consumer.
func (d *dispatcherImpl) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".Handle")
	defer scope.End()
	defer scope.TraceIfError(&err)

	notification, err := kafka.Decode[model.Message](message)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if len(notification.To) == 0 {
		log.Warn().Str("key", notification.Key()).Msg("dropping notification without recipient")

		return ErrNoRecipient
	}

	subject, body, err := render(notification)
	if err != nil {
		log.Error().Err(err).Str("key", notification.Key()).Msg("failed to render notification")

		return err
	}

	mail := mailer.Mail{
		From:    d.cfg.External.MailRelay.From,
		To:      notification.To,
		Subject: subject,
		HTML:    body,
		Tags: map[string]string{
			"kind":      string(notification.Kind),
			"reference": notification.ReferenceID,
		},
	}

	return d.deliver(ctx, notification.Key(), mail)
}

func (d *dispatcherImpl) deliver(ctx context.Context, key string, mail mailer.Mail) error {
	attempts := max(d.cfg.External.MailRelay.MaxAttempts, 1)
	backoff := time.Duration(d.cfg.External.MailRelay.BackoffSeconds) * time.Second

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err = d.mailer.Send(ctx, mail); err == nil {
			log.Info().Str("key", key).Int("attempt", attempt).Msg("notification delivered")

			return nil
		}

		log.Warn().Err(err).Str("key", key).Int("attempt", attempt).Msg("notification delivery failed")

		if errors.Is(err, errPermanentRejection) || attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("notification %s: %w", key, ctx.Err())
		case <-time.After(backoff * time.Duration(attempt)):
		}
	}

	log.Error().Err(err).Str("key", key).Msg("dropping notification")

	return fmt.Errorf("%w: %s: %w", ErrDeliveryExhausted, key, err)
}
