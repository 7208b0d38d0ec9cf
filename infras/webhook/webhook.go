package webhook

//go:generate go run go.uber.org/mock/mockgen -source=./webhook.go -destination=./mocks/webhook_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"afristay/config"
	"afristay/infras/otel"
	"afristay/shared/constant"
)

// Notifier posts a JSON payload to the contact notification endpoint.
type Notifier interface {
	Notify(ctx context.Context, payload any) error
}

type notifierImpl struct {
	config *config.Config
	otel   otel.Otel
	client *http.Client
}

func New(config *config.Config, otel otel.Otel) Notifier {
	return &notifierImpl{
		config: config,
		otel:   otel,
		client: &http.Client{
			Timeout: time.Duration(config.External.ContactWebhook.TimeoutSeconds) * time.Second,
		},
	}
}

func (n *notifierImpl) Notify(ctx context.Context, payload any) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".webhook.Notify")
	defer scope.End()
	defer scope.TraceIfError(&err)

	url := n.config.External.ContactWebhook.URL
	if url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := n.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to call webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	return nil
}
