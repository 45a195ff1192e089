package chat

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/edulive/lecturechat/internal/app"
	"github.com/edulive/lecturechat/internal/core"
	"github.com/edulive/lecturechat/internal/domain"
)

func (ctl *ChatWSController) handleEvent(sid core.SessionID, c *WsChatConn, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "chat").Str("sid", string(sid)).Msg("bad json")
		return
	}

	switch env.Event {
	case EventJoinLecture:
		ctl.handleJoin(sid, c, env.Data)
	case EventChatMessage:
		ctl.handleChatMessage(sid, c, env.Data)
	default:
		log.Warn().Str("module", "chat").Str("event", env.Event).Msg("unknown event")
	}
}

func (ctl *ChatWSController) handleJoin(sid core.SessionID, c *WsChatConn, data []byte) {
	var roomID string
	if len(data) > 0 {
		if err := json.Unmarshal(data, &roomID); err != nil {
			log.Error().Err(err).Str("module", "chat").Str("sid", string(sid)).Msg("bad join payload")
			ctl.sendEvent(c, EventError, Response{Code: 400, Message: "roomId is required"})
			return
		}
	}

	replay, err := ctl.Orch.Join(sid, domain.RoomID(roomID))
	if err != nil {
		if errors.Is(err, app.ErrAlreadyMember) {
			ctl.sendEvent(c, EventError, Response{Code: 409, Message: err.Error()})
			return
		}
		ctl.sendEvent(c, EventError, Response{Code: 400, Message: err.Error()})
		return
	}
	if replay == nil {
		replay = []domain.Message{}
	}

	log.Info().Str("module", "chat").Str("sid", string(sid)).Str("room", roomID).Int("replay", len(replay)).Msg("join")

	// The replay must land before the confirmation; both go through the
	// same send queue so order is preserved.
	ctl.sendEvent(c, EventLectureMessages, Response{
		Code:    200,
		Message: "recent lecture messages",
		Data:    replay,
	})
	ctl.sendEvent(c, EventJoinSuccess, Response{Code: 200, Message: "joined lecture"})
}

func (ctl *ChatWSController) handleChatMessage(sid core.SessionID, c *WsChatConn, data []byte) {
	var p ChatPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			log.Error().Err(err).Str("module", "chat").Str("sid", string(sid)).Msg("bad chat payload")
			ctl.sendEvent(c, EventValidationError, FieldError{Code: 400, Field: "roomId", Message: "roomId is required"})
			return
		}
	}

	sess, ok := ctl.Orch.Registry.GetSession(sid)
	if !ok {
		return
	}
	identity := sess.Identity()

	msg := domain.NewMessage(identity, p.Message)
	frame := mustEncode(EventChatMessage, Response{
		Code:    200,
		Message: "new message",
		Data:    msg,
	})

	// Validation happens inside the relay so its order (roomId, then
	// message) is uniform; rate limiting only applies to requests that
	// would otherwise be relayed.
	if p.RoomID != "" && p.Message != "" && !ctl.Limiter.Allow(identity.ID) {
		log.Warn().Str("module", "chat").Str("sid", string(sid)).Str("user", string(identity.ID)).Msg("rate limited")
		ctl.sendEvent(c, EventError, Response{Code: 429, Message: "too many messages, slow down"})
		return
	}

	if _, err := ctl.Orch.Post(domain.RoomID(p.RoomID), msg, frame); err != nil {
		if ve, ok := app.AsValidation(err); ok {
			ctl.sendEvent(c, EventValidationError, FieldError{Code: 400, Field: ve.Field, Message: ve.Error()})
			return
		}
		ctl.sendEvent(c, EventError, Response{Code: 400, Message: err.Error()})
	}
}
