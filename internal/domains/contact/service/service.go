package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"afristay/config"
	"afristay/infras/otel"
	"afristay/infras/webhook"
	"afristay/internal/domains/contact/model"
	"afristay/internal/domains/contact/model/dto"
	"afristay/internal/domains/contact/repository"
	notificationModel "afristay/internal/domains/notification/model"
	notificationService "afristay/internal/domains/notification/service"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/session"

	"github.com/rs/zerolog/log"
)

type Contact interface {
	// Create stores the message, then fires the webhook and the admin notification without waiting.
	Create(ctx context.Context, req dto.CreateMessageRequest) (dto.MessageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetMessagesResponse, error)
}

type serviceImpl struct {
	repo      repository.Message
	webhook   webhook.Notifier
	publisher notificationService.Publisher
	cfg       *config.Config
	otel      otel.Otel
}

func New(repo repository.Message, webhook webhook.Notifier, publisher notificationService.Publisher, cfg *config.Config, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:      repo,
		webhook:   webhook,
		publisher: publisher,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMessageRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	message := req.ToModel()

	if err = s.repo.Insert(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to store contact message")

		return res, fmt.Errorf("failed to store contact message: %w", err)
	}

	go s.fanOut(context.WithoutCancel(ctx), message)

	res.FromModel(message)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !session.FromContext(ctx).IsAdmin() {
		return res, failure.ForbiddenError
	}

	req.RestrictSort(model.TableName, constant.FieldCreatedAt, model.FieldEmail)

	filter := gDto.FilterGroup{}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contact messages")

		return res, fmt.Errorf("failed to count contact messages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact messages")

		return res, fmt.Errorf("failed to get contact messages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// fanOut runs the best-effort side effects of a new message. Failures are only logged.
func (s *serviceImpl) fanOut(ctx context.Context, message model.Message) {
	if err := s.webhook.Notify(ctx, dto.NewWebhookPayload(message)); err != nil {
		log.Warn().Err(err).Str("messageID", message.ID).Msg("contact webhook failed")
	}

	admin := s.cfg.External.MailRelay.AdminAddress
	if admin == constant.Empty {
		return
	}

	err := s.publisher.Publish(ctx, notificationModel.Message{
		Kind:        notificationModel.KindContactReceived,
		ReferenceID: message.ID,
		To:          []string{admin},
		Contact: &notificationModel.Contact{
			Name:    message.Name,
			Email:   message.Email,
			Message: message.Message,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("messageID", message.ID).Msg("failed to queue contact notification")
	}
}
