package model

import "afristay/shared/model"

const (
	TableName  = "contact_messages"
	EntityName = "contact_message"

	FieldID      = "id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

type Message struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Message string `db:"message"`
	model.Metadata
}
