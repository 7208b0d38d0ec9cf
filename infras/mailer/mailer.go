package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"afristay/config"
	"afristay/infras/otel"
	"afristay/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	ErrRelayNotConfigured = errors.New("mail relay url is not configured")
	ErrRelayRejected      = errors.New("mail relay rejected the message")
)

type Mail struct {
	From    string            `json:"from"`
	To      []string          `json:"to"`
	Subject string            `json:"subject"`
	HTML    string            `json:"html"`
	Text    string            `json:"text,omitempty"`
	Tags    map[string]string `json:"tags,omitempty"`
}

// Mailer hands a message to the HTTP mail relay.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
	client *http.Client
}

func New(config *config.Config, otel otel.Otel) Mailer {
	return &mailerImpl{
		config: config,
		otel:   otel,
		client: &http.Client{
			Timeout: time.Duration(config.External.MailRelay.TimeoutSeconds) * time.Second,
		},
	}
}

func (m *mailerImpl) Send(ctx context.Context, mail Mail) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".mailer.Send")
	defer scope.End()
	defer scope.TraceIfError(&err)

	relay := m.config.External.MailRelay
	if relay.URL == "" {
		return ErrRelayNotConfigured
	}

	if mail.From == "" {
		mail.From = relay.From
	}

	body, err := json.Marshal(mail)
	if err != nil {
		return fmt.Errorf("failed to marshal mail: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, relay.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	if relay.APIKey != "" {
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+relay.APIKey)
	}

	resp, err := m.client.Do(request)
	if err != nil {
		log.Error().Err(err).Str("subject", mail.Subject).Msg("failed to reach mail relay")

		return fmt.Errorf("failed to reach mail relay: %w", err)
	}
	defer resp.Body.Close()

	scope.SetAttribute("http.status_code", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return fmt.Errorf("%w: status %d: %s", ErrRelayRejected, resp.StatusCode, string(detail))
	}

	log.Info().Strs("to", mail.To).Str("subject", mail.Subject).Msg("mail handed to relay")

	return nil
}
