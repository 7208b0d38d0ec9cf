package model

import (
	"strings"
	"time"

	"afristay/shared/model"
	"afristay/shared/session"
)

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldRole      = "role"
	FieldBanned    = "banned"
	FieldLastLogin = "last_login"
)

type Profile struct {
	ID        string       `db:"id"`
	Email     string       `db:"email"`
	Password  string       `db:"password"`
	FullName  string       `db:"full_name"`
	Phone     *string      `db:"phone"`
	Role      session.Role `db:"role"`
	Banned    bool         `db:"banned"`
	LastLogin *time.Time   `db:"last_login"`
	model.Metadata
}

// FirstName is the first word of the full name, or the local part of the email when no name is set.
func (p Profile) FirstName() string {
	if fields := strings.Fields(p.FullName); len(fields) > 0 {
		return fields[0]
	}

	local, _, _ := strings.Cut(p.Email, "@")

	return local
}

func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}

	return p.Email
}

func (p Profile) ContactPhone() string {
	if p.Phone == nil {
		return ""
	}

	return *p.Phone
}
