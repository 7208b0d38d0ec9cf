package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"afristay/config"
	"afristay/infras/mailer"
	"afristay/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMailer(url string) mailer.Mailer {
	cfg := &config.Config{}
	cfg.External.MailRelay.URL = url
	cfg.External.MailRelay.APIKey = "relay-key"
	cfg.External.MailRelay.From = "AfriStay <no-reply@afristay.rw>"
	cfg.External.MailRelay.TimeoutSeconds = 2

	return mailer.New(cfg, mocks.NewOtel())
}

func TestSend(t *testing.T) {
	t.Parallel()

	var got mailer.Mail

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer relay-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	err := newMailer(server.URL).Send(context.Background(), mailer.Mail{
		To:      []string{"guest@example.com"},
		Subject: "Your receipt",
		HTML:    "<p>thanks</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "AfriStay <no-reply@afristay.rw>", got.From)
	assert.Equal(t, []string{"guest@example.com"}, got.To)
}

func TestSend_Rejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad recipient", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	err := newMailer(server.URL).Send(context.Background(), mailer.Mail{To: []string{"x"}})
	assert.ErrorIs(t, err, mailer.ErrRelayRejected)
}

func TestSend_NotConfigured(t *testing.T) {
	t.Parallel()

	err := newMailer("").Send(context.Background(), mailer.Mail{To: []string{"x"}})
	assert.ErrorIs(t, err, mailer.ErrRelayNotConfigured)
}
