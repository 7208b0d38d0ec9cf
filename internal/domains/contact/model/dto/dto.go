package dto

import (
	"strings"

	"afristay/internal/domains/contact/model"
	"afristay/shared"
	"afristay/shared/constant"
	gDto "afristay/shared/dto"
	gModel "afristay/shared/model"
	"afristay/shared/timezone"

	"github.com/google/uuid"
)

type CreateMessageRequest struct {
	Name    string `json:"name"    validate:"required,max=120"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

func (r CreateMessageRequest) ToModel() model.Message {
	now := timezone.Now()

	return model.Message{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.TrimSpace(r.Email),
		Message:  strings.TrimSpace(r.Message),
		Metadata: gModel.NewMetadata(constant.ContextGuest, now),
	}
}

// WebhookPayload is posted to the contact webhook after a message is stored.
type WebhookPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	ReceivedAt string `json:"received_at"`
}

func NewWebhookPayload(m model.Message) WebhookPayload {
	return WebhookPayload{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Message:    m.Message,
		ReceivedAt: timezone.Format(m.CreatedAt, constant.DateFormat),
	}
}

type MessageResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	gDto.Metadata
}

func (r *MessageResponse) FromModel(m model.Message) {
	r.ID = m.ID
	r.Name = m.Name
	r.Email = m.Email
	r.Message = m.Message
	r.Metadata.FromModel(m.Metadata)
}

type GetMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetMessagesResponse) FromModels(models []model.Message, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]MessageResponse, len(models))
	for i, m := range models {
		r.Messages[i].FromModel(m)
	}
}
