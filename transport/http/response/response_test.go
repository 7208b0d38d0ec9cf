package response_test

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"afristay/shared/constant"
	"afristay/shared/failure"
	"afristay/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure keeps its status and message",
			err:      failure.Conflict("listing is already booked"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"listing is already booked"}`,
		},
		{
			name:     "wrapped failure is unwrapped",
			err:      fmt.Errorf("failed to approve booking: %w", failure.NotFound("booking not found")),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"booking not found"}`,
		},
		{
			name:     "plain error is hidden",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"` + constant.ResponseErrorInternal + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "b1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"b1"}}`, rec.Body.String())
}

func TestWithJSON_Unencodable(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, math.Inf(1))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		write    func(http.ResponseWriter)
		wantCode int
		wantMsg  string
	}{
		{name: "rate limited", write: response.WithRequestLimitExceeded, wantCode: http.StatusTooManyRequests, wantMsg: constant.ResponseErrorRequestLimitExceeded},
		{name: "shutting down", write: response.WithPreparingShutdown, wantCode: http.StatusServiceUnavailable, wantMsg: constant.ResponseErrorPrepareShutdown},
		{name: "unhealthy", write: response.WithUnhealthy, wantCode: http.StatusServiceUnavailable, wantMsg: constant.ResponseErrorUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, `{"message":"`+tt.wantMsg+`"}`, rec.Body.String())
		})
	}
}
