package live

import (
	"net/http"
	"slices"
	"time"

	"afristay/config"
	"afristay/infras/jwt"
	"afristay/infras/live"
	"afristay/infras/otel"
	"afristay/shared"
	"afristay/shared/cache"
	"afristay/shared/constant"
	"afristay/shared/failure"
	"afristay/shared/session"
	"afristay/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
	headerOrigin   = "Origin"
)

type Handler struct {
	hub      *live.Hub
	jwt      jwt.JWT
	cache    cache.RedisCache
	otel     otel.Otel
	upgrader websocket.Upgrader
}

func New(hub *live.Hub, jwt jwt.JWT, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Handler {
	origins := cfg.App.CORS.AllowedOrigins

	return Handler{
		hub:   hub,
		jwt:   jwt,
		cache: cache,
		otel:  otel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get(headerOrigin)

				return origin == constant.Empty || len(origins) == 0 ||
					slices.Contains(origins, constant.Asterix) || slices.Contains(origins, origin)
			},
		},
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/live", handler.Connect)
}

// Connect upgrades to a websocket that streams booking events to admin and owner dashboards.
// Browsers cannot set headers on websocket requests, so the access token travels in the query.
// @Summary Live booking events
// @Tags Live
// @Param token query string true "Access token"
// @Success 101
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/live [get]
func (handler *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Connect")
	defer scope.End()

	claims, err := handler.jwt.ValidateToken(ctx, r.URL.Query().Get(constant.RequestParamToken), jwt.AccessToken)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.Unauthorized(err.Error()))

		return
	}

	revoked, err := handler.cache.Exists(ctx, shared.BuildCacheKey(constant.CacheKeyRevokedToken, claims.TokenID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check token revocation")
		response.WithError(w, err)

		return
	}

	if revoked {
		response.WithError(w, failure.Unauthorized("token has been revoked"))

		return
	}

	role, _ := session.ParseRole(claims.Role)
	if role != session.RoleAdmin && role != session.RoleOwner {
		response.WithError(w, failure.ForbiddenError)

		return
	}

	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upgrade live connection")

		return
	}

	client := live.NewClient(uuid.NewString(), claims.UserID, role == session.RoleAdmin)
	handler.hub.Register(client)

	log.Info().Str("client", client.ID).Str("userID", claims.UserID).Msg("live client connected")

	go handler.writePump(conn, client)

	handler.readPump(conn, client)
}

// readPump only services control frames; dashboards never send data.
func (handler *Handler) readPump(conn *websocket.Conn, client *live.Client) {
	defer func() {
		handler.hub.Unregister(client.ID)
		conn.Close()

		log.Info().Str("client", client.ID).Msg("live client disconnected")
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("client", client.ID).Msg("live connection closed unexpectedly")
			}

			return
		}
	}
}

func (handler *Handler) writePump(conn *websocket.Conn, client *live.Client) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Warn().Err(err).Str("client", client.ID).Msg("failed to write live event")

				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
