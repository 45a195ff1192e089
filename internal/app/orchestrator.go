package app

import (
	"github.com/rs/zerolog/log"

	"github.com/edulive/lecturechat/internal/core"
	"github.com/edulive/lecturechat/internal/domain"
)

// Orchestrator is the broadcast relay. It coordinates the registry and the
// room table and is the only writer of room history. Adapters hand it
// already-authenticated sessions; it never sees credentials or sockets.
type Orchestrator struct {
	Registry *Registry
	Rooms    core.RoomFactory
}

// Join adds sid to room and returns the history replay the joiner must
// receive before its join confirmation.
func (o *Orchestrator) Join(sid core.SessionID, room domain.RoomID) ([]domain.Message, error) {
	if room == "" {
		return nil, &ValidationError{Field: "roomId"}
	}
	sess, ok := o.Registry.GetSession(sid)
	if !ok {
		// Disconnect raced the join; nothing to do.
		return nil, &ValidationError{Field: "roomId"}
	}

	svc := o.Rooms.GetOrCreate(room)
	replay, joined := svc.Join(sid, sess)
	if !joined {
		return nil, ErrAlreadyMember
	}
	o.Registry.TrackJoin(sid, room)
	return replay, nil
}

// Post validates a chat message, appends it to the room history and fans the
// pre-encoded frame out to the member set observed after the append.
func (o *Orchestrator) Post(room domain.RoomID, msg domain.Message, frame core.Frame) (core.PublishResult, error) {
	if room == "" {
		return core.PublishResult{}, &ValidationError{Field: "roomId"}
	}
	if msg.Text == "" {
		return core.PublishResult{}, &ValidationError{Field: "message"}
	}

	svc := o.Rooms.GetOrCreate(room)
	res := svc.Post(msg, frame)
	log.Debug().Str("module", "app.relay").Str("room", string(room)).Str("sender", string(msg.SenderID)).Int("sent_to", res.SentTo).Msg("message relayed")
	return res, nil
}

// Disconnect releases every membership sid held. Terminal for the handle.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	for _, room := range o.Registry.Unbind(sid) {
		if svc, ok := o.Rooms.Get(room); ok {
			svc.Leave(sid)
		}
	}
}
