package core

import "github.com/edulive/lecturechat/internal/domain"

// Frame is a raw encoded payload headed for one transport endpoint.
type Frame []byte

// SessionID identifies one live connection handle.
type SessionID string

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberSession binds a resolved identity and its transport endpoint.
// This is what a room stores and fans out to.
type MemberSession interface {
	Identity() domain.Identity
	Signal() SignalConnection
}

// PublishResult reports delivery stats/backpressure to the relay.
type PublishResult struct {
	SentTo  int
	Dropped []MemberSession
}

// MemberDTO is a read-only view for APIs (no transport fields).
type MemberDTO struct {
	ID       domain.UserID `json:"id"`
	Username string        `json:"username"`
}

// RoomService is the core-facing API of a room. It owns the membership set
// and the bounded message history but never touches transport resources.
// All mutating operations on one room are serialized by the room itself.
type RoomService interface {
	ID() domain.RoomID
	MemberCount() int
	MembersSnapshot() []MemberDTO

	// Join adds the handle and returns the history snapshot the joiner must
	// replay. ok is false when the handle is already a member; the room is
	// not mutated in that case.
	Join(sid SessionID, ms MemberSession) (history []domain.Message, ok bool)
	Leave(sid SessionID)
	HasMember(sid SessionID) bool

	// Post appends the message to the history and fans frame out to the
	// member set observed after the append. The sender receives its own echo
	// when it is a member. frame is the pre-encoded wire form of msg.
	Post(msg domain.Message, frame Frame) PublishResult

	History() []domain.Message
}

type RoomInfo struct {
	ID          domain.RoomID `json:"roomId"`
	MemberCount int           `json:"memberCount"`
}

type RoomFactory interface {
	GetOrCreate(id domain.RoomID) RoomService
	Get(id domain.RoomID) (RoomService, bool)
	List() []RoomInfo
}
