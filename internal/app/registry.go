package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/edulive/lecturechat/internal/core"
	"github.com/edulive/lecturechat/internal/domain"
)

type sessionEntry struct {
	Session core.MemberSession
	Rooms   map[domain.RoomID]struct{}
	Cancel  context.CancelFunc
}

// Registry tracks every live connection handle and the rooms it has joined.
// It is the source of truth for "which rooms must this handle leave on
// disconnect"; the member sets themselves live in the rooms.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[core.SessionID]*sessionEntry)}
}

// Bind registers an authenticated connection. cancel tears down the
// connection's pumps when the registry decides to drop it.
func (r *Registry) Bind(sid core.SessionID, sess core.MemberSession, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{
		Session: sess,
		Rooms:   make(map[domain.RoomID]struct{}),
		Cancel:  cancel,
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("user", string(sess.Identity().ID)).Msg("bound session")
}

func (r *Registry) GetSession(sid core.SessionID) (core.MemberSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Session, true
	}
	return nil, false
}

// TrackJoin records that sid holds membership in room.
func (r *Registry) TrackJoin(sid core.SessionID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok {
		e.Rooms[room] = struct{}{}
	}
}

// JoinedRooms returns the rooms sid currently holds membership in.
func (r *Registry) JoinedRooms(sid core.SessionID) []domain.RoomID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok {
		return nil
	}
	out := make([]domain.RoomID, 0, len(e.Rooms))
	for id := range e.Rooms {
		out = append(out, id)
	}
	return out
}

// Unbind removes the session and returns the rooms it still held, so the
// caller can release each membership.
func (r *Registry) Unbind(sid core.SessionID) []domain.RoomID {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return nil
	}
	delete(r.sessions, sid)
	out := make([]domain.RoomID, 0, len(e.Rooms))
	for id := range e.Rooms {
		out = append(out, id)
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("rooms", len(out)).Msg("unbind session")
	return out
}

func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}
