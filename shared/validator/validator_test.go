package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"afristay/shared/failure"
	"afristay/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUp struct {
	Email    string  `json:"email"     validate:"required,email"`
	Password string  `json:"password"  validate:"required,min=8"`
	Phone    *string `json:"phone"     validate:"omitempty,e164"`
	Guests   int     `json:"guests"    validate:"gt=0,lte=20"`
	Currency string  `json:"currency"  validate:"omitempty,len=3,alpha"`
	Role     string  `json:"role"      validate:"omitempty,oneof=user owner"`
}

type banner struct {
	Title  string                `json:"title"  validate:"required"`
	Banner *multipart.FileHeader `json:"-"      validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func upload(contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)

	return &multipart.FileHeader{Filename: "banner", Header: header, Size: size}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	phone := "+250788123456"
	badPhone := "0788"

	valid := signUp{Email: "aline@example.com", Password: "s3cretpass", Phone: &phone, Guests: 2, Currency: "RWF"}

	tests := []struct {
		name    string
		mutate  func(s *signUp)
		wantMsg string
	}{
		{name: "valid", mutate: func(*signUp) {}},
		{name: "missing email", mutate: func(s *signUp) { s.Email = "" }, wantMsg: "email is required"},
		{name: "bad email", mutate: func(s *signUp) { s.Email = "aline" }, wantMsg: "email must be a valid email address"},
		{name: "short password", mutate: func(s *signUp) { s.Password = "short" }, wantMsg: "password must be at least 8"},
		{name: "bad phone", mutate: func(s *signUp) { s.Phone = &badPhone }, wantMsg: "phone must be a phone number in international format"},
		{name: "no guests", mutate: func(s *signUp) { s.Guests = 0 }, wantMsg: "guests must be greater than 0"},
		{name: "bad currency", mutate: func(s *signUp) { s.Currency = "RW" }, wantMsg: "currency must have length 3"},
		{name: "unknown role", mutate: func(s *signUp) { s.Role = "admin" }, wantMsg: "role must be one of user owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := valid
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateStruct_Uploads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    *multipart.FileHeader
		wantErr bool
	}{
		{name: "no file", file: nil},
		{name: "png within limit", file: upload("image/png", 512*1024)},
		{name: "wrong type", file: upload("application/pdf", 1024), wantErr: true},
		{name: "too large", file: upload("image/jpeg", 2*1024*1024), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validator.ValidateStruct(&banner{Title: "Umuganura", Banner: tt.file})
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}

func TestValidate_DecodesBody(t *testing.T) {
	t.Parallel()

	var req signUp

	err := validator.Validate(strings.NewReader(`{"email":"a@b.rw","password":"longenough","guests":1}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "a@b.rw", req.Email)

	err = validator.Validate(strings.NewReader(`{"email":`), &req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestValidateVar(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.ValidateVar("9b2e1c1e-4a4c-4a8b-9f63-1f2d6f0a6c11", "uuid"))
	assert.Error(t, validator.ValidateVar("nope", "uuid"))
	assert.Error(t, validator.ValidateVar("", "required"))
}
