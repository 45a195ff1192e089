package chat

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/edulive/lecturechat/internal/core"
)

const writeWait = 5 * time.Second

func (ctl *ChatWSController) writePump(ctx context.Context, c *WsChatConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "chat").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Str("module", "chat").Msg("writePump ping error")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "chat").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "chat").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "chat").Msg("writePump write error")
				return
			}
		}
	}
}

// readPump owns the session's teardown: when the read side ends for any
// reason, every room membership is released before the handle disappears.
func (ctl *ChatWSController) readPump(ctx context.Context, sid core.SessionID, c *WsChatConn) {
	defer func() {
		log.Info().Str("module", "chat").Str("sid", string(sid)).Msg("readPump closing")
		ctl.Orch.Disconnect(sid)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "chat").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Error().Err(err).Str("module", "chat").Str("sid", string(sid)).Msg("readPump read error")
				}
				return
			}
			ctl.handleEvent(sid, c, data)
		}
	}
}
