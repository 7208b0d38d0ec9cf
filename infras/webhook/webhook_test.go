package webhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"afristay/config"
	"afristay/infras/otel/mocks"
	"afristay/infras/webhook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotifier(url string) webhook.Notifier {
	cfg := &config.Config{}
	cfg.External.ContactWebhook.URL = url
	cfg.External.ContactWebhook.TimeoutSeconds = 2

	return webhook.New(cfg, mocks.NewOtel())
}

func TestNotify(t *testing.T) {
	t.Parallel()

	var got map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer server.Close()

	err := newNotifier(server.URL).Notify(context.Background(), map[string]string{"name": "Aline"})
	require.NoError(t, err)
	assert.Equal(t, "Aline", got["name"])
}

func TestNotify_ErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	assert.Error(t, newNotifier(server.URL).Notify(context.Background(), map[string]string{}))
}

func TestNotify_Disabled(t *testing.T) {
	t.Parallel()

	assert.NoError(t, newNotifier("").Notify(context.Background(), map[string]string{}))
}
