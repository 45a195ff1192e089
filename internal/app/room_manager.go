package app

import (
	"sync"

	"github.com/edulive/lecturechat/internal/core"
	"github.com/edulive/lecturechat/internal/domain"
)

// RoomManagerImpl owns the room table. Rooms are created lazily on first use
// and kept for the life of the process so a late joiner always sees the
// room's replay window. The manager lock only guards the table; each room
// serializes its own traffic.
type RoomManagerImpl struct {
	mu          sync.RWMutex
	historySize int
	rooms       map[domain.RoomID]core.RoomService
}

func NewRoomManager(historySize int) core.RoomFactory {
	return &RoomManagerImpl{
		historySize: historySize,
		rooms:       make(map[domain.RoomID]core.RoomService),
	}
}

func (f *RoomManagerImpl) GetOrCreate(id domain.RoomID) core.RoomService {
	f.mu.RLock()
	room, ok := f.rooms[id]
	f.mu.RUnlock()
	if ok {
		return room
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[id]; ok {
		return room
	}
	room = core.NewRoomService(id, f.historySize)
	f.rooms[id] = room
	return room
}

func (f *RoomManagerImpl) Get(id domain.RoomID) (core.RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	return room, ok
}

func (f *RoomManagerImpl) List() []core.RoomInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(f.rooms))
	for id, r := range f.rooms {
		out = append(out, core.RoomInfo{ID: id, MemberCount: r.MemberCount()})
	}
	return out
}
