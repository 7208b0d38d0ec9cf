package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"afristay/config"
	"afristay/infras/kafka"
	kafkaMocks "afristay/infras/kafka/mocks"
	"afristay/infras/mailer"
	mailerMocks "afristay/infras/mailer/mocks"
	"afristay/infras/otel/mocks"
	"afristay/internal/domains/notification/model"
	"afristay/internal/domains/notification/service"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.NotificationTopic = "afristay.notifications"
	cfg.External.MailRelay.From = "AfriStay <no-reply@afristay.rw>"
	cfg.External.MailRelay.MaxAttempts = 3
	cfg.External.MailRelay.BackoffSeconds = 0

	return cfg
}

func approvedMessage() model.Message {
	return model.Message{
		Kind:        model.KindBookingApproved,
		ReferenceID: "4f1c2a9e-0000-0000-0000-000000000000",
		To:          []string{"guest@example.com"},
		Booking: &model.Booking{
			ReceiptNumber: "RCP-4F1C2A9E",
			BookingID:     "4f1c2a9e-0000-0000-0000-000000000000",
			ListingTitle:  "Kigali loft",
			GuestName:     "Aline",
			StartDate:     "2026-01-10",
			EndDate:       "2026-01-13",
			Nights:        3,
			NightlyPrice:  50000,
			TotalAmount:   150000,
			Currency:      "RWF",
			PaymentMethod: "mobile_money",
		},
	}
}

func encode(t *testing.T, message model.Message) kafkaGo.Message {
	t.Helper()

	value, err := json.Marshal(message)
	require.NoError(t, err)

	return kafkaGo.Message{Key: []byte(message.Key()), Value: value}
}

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	publisher := service.NewPublisher(client, testConfig(), mocks.NewOtel())

	t.Run("keyed by kind and reference", func(t *testing.T) {
		client.EXPECT().
			SendMessages(gomock.Any(), "afristay.notifications", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, "booking.approved:4f1c2a9e-0000-0000-0000-000000000000", messages[0].Key)

				queued, ok := messages[0].Value.(model.Message)
				require.True(t, ok)
				assert.False(t, queued.QueuedAt.IsZero())

				return nil
			})

		assert.NoError(t, publisher.Publish(context.Background(), approvedMessage()))
	})

	t.Run("recipient is required", func(t *testing.T) {
		message := approvedMessage()
		message.To = nil

		assert.ErrorIs(t, publisher.Publish(context.Background(), message), service.ErrNoRecipient)
	})

	t.Run("broker failure surfaces", func(t *testing.T) {
		client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		assert.Error(t, publisher.Publish(context.Background(), approvedMessage()))
	})
}

func TestDispatcher_Handle(t *testing.T) {
	tests := []struct {
		name      string
		message   func() model.Message
		setupMock func(m *mailerMocks.MockMailer)
		wantErr   error
	}{
		{
			name:    "delivered on first attempt",
			message: approvedMessage,
			setupMock: func(m *mailerMocks.MockMailer) {
				m.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, mail mailer.Mail) error {
					assert.Equal(t, []string{"guest@example.com"}, mail.To)
					assert.Equal(t, "Booking confirmed - RCP-4F1C2A9E", mail.Subject)
					assert.Contains(t, mail.HTML, "150000 RWF")
					assert.Equal(t, "booking.approved", mail.Tags["kind"])

					return nil
				})
			},
		},
		{
			name:    "retried until the relay accepts",
			message: approvedMessage,
			setupMock: func(m *mailerMocks.MockMailer) {
				gomock.InOrder(
					m.EXPECT().Send(gomock.Any(), gomock.Any()).Return(mailer.ErrRelayRejected),
					m.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
		},
		{
			name:    "dropped after the last attempt",
			message: approvedMessage,
			setupMock: func(m *mailerMocks.MockMailer) {
				m.EXPECT().Send(gomock.Any(), gomock.Any()).Return(mailer.ErrRelayRejected).Times(3)
			},
			wantErr: service.ErrDeliveryExhausted,
		},
		{
			name:    "unconfigured relay is not retried",
			message: approvedMessage,
			setupMock: func(m *mailerMocks.MockMailer) {
				m.EXPECT().Send(gomock.Any(), gomock.Any()).Return(mailer.ErrRelayNotConfigured).Times(1)
			},
			wantErr: service.ErrDeliveryExhausted,
		},
		{
			name: "contact message goes to the inbox",
			message: func() model.Message {
				return model.Message{
					Kind:        model.KindContactReceived,
					ReferenceID: "contact-1",
					To:          []string{"admin@afristay.rw"},
					Contact:     &model.Contact{Name: "Eric", Email: "eric@example.com", Message: "Do you list cars in Musanze?"},
				}
			},
			setupMock: func(m *mailerMocks.MockMailer) {
				m.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, mail mailer.Mail) error {
					assert.Equal(t, "Contact message from Eric", mail.Subject)
					assert.Contains(t, mail.HTML, "Musanze")

					return nil
				})
			},
		},
		{
			name: "missing payload is dropped",
			message: func() model.Message {
				message := approvedMessage()
				message.Booking = nil

				return message
			},
			setupMock: func(m *mailerMocks.MockMailer) {},
			wantErr:   service.ErrEmptyPayload,
		},
		{
			name: "unknown kind is dropped",
			message: func() model.Message {
				message := approvedMessage()
				message.Kind = "booking.teleported"

				return message
			},
			setupMock: func(m *mailerMocks.MockMailer) {},
			wantErr:   service.ErrUnknownKind,
		},
		{
			name: "no recipient",
			message: func() model.Message {
				message := approvedMessage()
				message.To = nil

				return message
			},
			setupMock: func(m *mailerMocks.MockMailer) {},
			wantErr:   service.ErrNoRecipient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mailMock := mailerMocks.NewMockMailer(ctrl)
			tt.setupMock(mailMock)

			dispatcher := service.NewDispatcher(kafkaMocks.NewMockClient(ctrl), mailMock, testConfig(), mocks.NewOtel())

			err := dispatcher.Handle(context.Background(), encode(t, tt.message()))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDispatcher_HandleRejectsGarbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := service.NewDispatcher(kafkaMocks.NewMockClient(ctrl), mailerMocks.NewMockMailer(ctrl), testConfig(), mocks.NewOtel())

	assert.Error(t, dispatcher.Handle(context.Background(), kafkaGo.Message{Value: []byte("{not json")}))
}
