package dto

import (
	"time"

	"afristay/shared/constant"
	"afristay/shared/model"
	"afristay/shared/timezone"
)

// Metadata is the audit block embedded in API responses.
type Metadata struct {
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = formatTimestamp(model.CreatedAt)
	m.ModifiedAt = formatTimestamp(model.ModifiedAt)
	m.CreatedBy = model.CreatedBy
	m.ModifiedBy = model.ModifiedBy
}

// formatTimestamp renders t in the app timezone; rows loaded without their audit columns stay empty.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return timezone.Format(t, constant.DateFormat)
}
