package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/edulive/lecturechat/internal/domain"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources. The single mutex is the
// serialization point for everything touching this room, so for a fixed room
// the order (history append, member snapshot, fan-out) observed by one Post
// can never interleave with another Post's.
type roomImpl struct {
	id      domain.RoomID
	mu      sync.RWMutex
	bySID   map[SessionID]MemberSession
	history *HistoryBuffer
}

func NewRoomService(id domain.RoomID, historySize int) RoomService {
	return &roomImpl{
		id:      id,
		bySID:   make(map[SessionID]MemberSession),
		history: NewHistoryBuffer(historySize),
	}
}

func (r *roomImpl) ID() domain.RoomID { return r.id }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySID)
}

func (r *roomImpl) HasMember(sid SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bySID[sid]
	return ok
}

func (r *roomImpl) Join(sid SessionID, ms MemberSession) ([]domain.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bySID[sid]; exists {
		return nil, false
	}
	r.bySID[sid] = ms
	replay := r.history.Snapshot()
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("sid", string(sid)).Str("user", string(ms.Identity().ID)).Msg("member joined")
	return replay, true
}

func (r *roomImpl) Leave(sid SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySID[sid]; !ok {
		return
	}
	delete(r.bySID, sid)
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("sid", string(sid)).Msg("member left")
}

func (r *roomImpl) Post(msg domain.Message, frame Frame) PublishResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history.Append(msg)

	res := PublishResult{}
	for _, m := range r.bySID {
		if err := m.Signal().TrySend(frame); err != nil {
			res.Dropped = append(res.Dropped, m)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (r *roomImpl) History() []domain.Message {
	return r.history.Snapshot()
}

func (r *roomImpl) MembersSnapshot() []MemberDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MemberDTO, 0, len(r.bySID))
	for _, ms := range r.bySID {
		id := ms.Identity()
		out = append(out, MemberDTO{ID: id.ID, Username: id.Username})
	}
	return out
}
