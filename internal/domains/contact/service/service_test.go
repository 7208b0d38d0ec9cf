package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"afristay/config"
	"afristay/infras/otel/mocks"
	webhookMocks "afristay/infras/webhook/mocks"
	contactMocks "afristay/internal/domains/contact/mocks"
	"afristay/internal/domains/contact/model"
	"afristay/internal/domains/contact/model/dto"
	"afristay/internal/domains/contact/service"
	notificationMocks "afristay/internal/domains/notification/mocks"
	notificationModel "afristay/internal/domains/notification/model"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo      *contactMocks.MockMessage
	webhook   *webhookMocks.MockNotifier
	publisher *notificationMocks.MockPublisher
	svc       service.Contact
}

func newFixture(t *testing.T, admin string) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      contactMocks.NewMockMessage(ctrl),
		webhook:   webhookMocks.NewMockNotifier(ctrl),
		publisher: notificationMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.External.MailRelay.AdminAddress = admin

	f.svc = service.New(f.repo, f.webhook, f.publisher, cfg, mocks.NewOtel())

	return f
}

var validRequest = dto.CreateMessageRequest{
	Name:    " Aline ",
	Email:   "aline@example.com",
	Message: "Do you have rooms near Lake Kivu in August?",
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("side effect was not triggered")
	}
}

func TestCreate_NotifiesWebhookAndAdmin(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "admin@afristay.rw")

	var stored model.Message

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Message) error {
		stored = m

		return nil
	})

	hooked := make(chan struct{})
	f.webhook.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, payload any) error {
		p, ok := payload.(dto.WebhookPayload)
		assert.True(t, ok)
		assert.Equal(t, "Aline", p.Name)
		close(hooked)

		return nil
	})

	published := make(chan struct{})
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg notificationModel.Message) error {
		assert.Equal(t, notificationModel.KindContactReceived, msg.Kind)
		assert.Equal(t, []string{"admin@afristay.rw"}, msg.To)
		assert.Equal(t, stored.ID, msg.ReferenceID)
		require.NotNil(t, msg.Contact)
		assert.Equal(t, "aline@example.com", msg.Contact.Email)
		close(published)

		return nil
	})

	res, err := f.svc.Create(context.Background(), validRequest)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, res.ID)
	assert.Equal(t, "Aline", res.Name)

	wait(t, hooked)
	wait(t, published)
}

func TestCreate_WebhookFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	hooked := make(chan struct{})
	f.webhook.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, any) error {
		close(hooked)

		return errors.New("timeout")
	})

	_, err := f.svc.Create(context.Background(), validRequest)
	require.NoError(t, err)

	wait(t, hooked)
}

func TestCreate_InsertFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "admin@afristay.rw")

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := f.svc.Create(context.Background(), validRequest)
	require.Error(t, err)
}

func TestGetAll(t *testing.T) {
	t.Parallel()

	t.Run("admin only", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")

		ctx := session.WithSession(context.Background(), session.Session{UserID: "u1", Role: session.RoleUser})

		_, err := f.svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10})
		assert.ErrorIs(t, err, failure.ForbiddenError)
	})

	t.Run("lists messages", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "")

		ctx := session.WithSession(context.Background(), session.Session{UserID: "a1", Role: session.RoleAdmin})

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Message{{ID: "m1", Name: "Aline"}}, nil)

		res, err := f.svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 11, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		require.Len(t, res.Messages, 1)
		assert.Equal(t, "m1", res.Messages[0].ID)
	})
}
