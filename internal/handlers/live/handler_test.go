package live_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"afristay/config"
	"afristay/infras/jwt"
	jwtMocks "afristay/infras/jwt/mocks"
	"afristay/infras/live"
	"afristay/infras/otel/mocks"
	liveHandler "afristay/internal/handlers/live"
	cacheMocks "afristay/shared/cache/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T, hub *live.Hub, tokens map[string]*jwt.Claims, revoked bool) *httptest.Server {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtMock := jwtMocks.NewMockJWT(ctrl)
	cacheMock := cacheMocks.NewMockRedisCache(ctrl)

	jwtMock.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), jwt.AccessToken).
		DoAndReturn(func(_ context.Context, token string, _ jwt.TokenType) (*jwt.Claims, error) {
			claims, ok := tokens[token]
			if !ok {
				return nil, jwt.ErrInvalidToken
			}

			return claims, nil
		}).AnyTimes()
	cacheMock.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(revoked, nil).AnyTimes()

	handler := liveHandler.New(hub, jwtMock, cacheMock, &config.Config{}, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func wsURL(server *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/live?token=" + token
}

func TestConnect_StreamsOwnEvents(t *testing.T) {
	t.Parallel()

	hub := live.NewHub()
	server := newServer(t, hub, map[string]*jwt.Claims{
		"owner-token": {UserID: "owner-1", Role: "owner", TokenID: "t1"},
	}, false)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "owner-token"), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(live.Event{Type: "booking.approved", BookingID: "b-2", OwnerID: "owner-2"})
	hub.Broadcast(live.Event{Type: "booking.approved", BookingID: "b-1", ListingID: "l-1", Status: "approved", OwnerID: "owner-1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var event map[string]string
	require.NoError(t, conn.ReadJSON(&event))

	assert.Equal(t, "b-1", event["booking_id"])
	assert.Equal(t, "approved", event["status"])
}

func TestConnect_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    string
		revoked  bool
		wantCode int
	}{
		{name: "unknown token", token: "garbage", wantCode: http.StatusUnauthorized},
		{name: "plain user", token: "user-token", wantCode: http.StatusForbidden},
		{name: "revoked token", token: "admin-token", revoked: true, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hub := live.NewHub()
			server := newServer(t, hub, map[string]*jwt.Claims{
				"user-token":  {UserID: "user-1", Role: "user", TokenID: "t2"},
				"admin-token": {UserID: "admin-1", Role: "admin", TokenID: "t3"},
			}, tt.revoked)

			_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, tt.token), nil)
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, 0, hub.Len())
		})
	}
}

func TestConnect_UnregistersOnClose(t *testing.T) {
	t.Parallel()

	hub := live.NewHub()
	server := newServer(t, hub, map[string]*jwt.Claims{
		"admin-token": {UserID: "admin-1", Role: "admin", TokenID: "t4"},
	}, false)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "admin-token"), nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	require.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
