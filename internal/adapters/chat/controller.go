// Package chat drives the per-connection session lifecycle over a websocket:
// authenticate once, then accept join and chat events until disconnect.
package chat

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/edulive/lecturechat/internal/app"
	"github.com/edulive/lecturechat/internal/auth"
	"github.com/edulive/lecturechat/internal/core"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type ChatWSController struct {
	Orch     *app.Orchestrator
	Verifier *auth.Verifier
	Limiter  *MessageRateLimiter

	ReadLimit  int64
	PingPeriod time.Duration
}

func NewChatWSController(orch *app.Orchestrator, verifier *auth.Verifier, limiter *MessageRateLimiter, readLimit int64, pingPeriod time.Duration) *ChatWSController {
	if pingPeriod <= 0 {
		pingPeriod = 54 * time.Second
	}
	return &ChatWSController{
		Orch:       orch,
		Verifier:   verifier,
		Limiter:    limiter,
		ReadLimit:  readLimit,
		PingPeriod: pingPeriod,
	}
}

// credential pulls the bearer token from the handshake request: query param
// first (browser clients cannot set headers on websockets), then the
// Authorization header.
func credential(c *gin.Context) string {
	if tok := c.Query("token"); tok != "" {
		return tok
	}
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

// HandleChat upgrades the connection and runs the authentication gate.
// Until Verify succeeds nothing else is processed; the failure kind is
// reported on the socket and the connection is torn down.
func (ctl *ChatWSController) HandleChat(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "chat").Str("sid", string(sid)).Str("ct", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	identity, err := ctl.Verifier.Verify(c.Request.Context(), credential(c))
	if err != nil {
		ae, ok := auth.AsAuthError(err)
		if !ok {
			ae = &auth.AuthError{Kind: auth.Invalid}
		}
		log.Warn().Str("module", "chat").Str("sid", string(sid)).Int("code", ae.Code()).Msg("authentication refused")
		frame := mustEncode(EventAuthError, Response{Code: ae.Code(), Message: ae.Error()})
		_ = ws.WriteMessage(websocket.TextMessage, frame)
		_ = ws.Close()
		return
	}

	conn := newWsChatConn(ws)
	sess := core.NewMemberSession(identity, conn)
	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Registry.Bind(sid, sess, cancel)

	// Queue userDetails before the pumps start: it must be the first frame
	// on the wire, ahead of any response to an early join.
	ctl.sendEvent(conn, EventUserDetails, Response{
		Code:    200,
		Message: "authenticated",
		Data:    identity,
	})

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
	log.Info().Str("module", "chat").Str("sid", string(sid)).Str("user", string(identity.ID)).Msg("authenticated")
}

func (ctl *ChatWSController) sendEvent(c *WsChatConn, event string, payload any) {
	frame := mustEncode(event, payload)
	if frame == nil {
		return
	}
	if err := c.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "chat").Str("event", event).Msg("send event")
	}
}
