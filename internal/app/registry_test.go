package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulive/lecturechat/internal/core"
	"github.com/edulive/lecturechat/internal/domain"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func session(id string) core.MemberSession {
	return core.NewMemberSession(domain.Identity{ID: domain.UserID(id), Username: id}, nopConn{})
}

func TestRegistryBindAndLookup(t *testing.T) {
	r := NewRegistry()
	r.Bind("s1", session("u1"), nil)

	got, ok := r.GetSession("s1")
	require.True(t, ok)
	assert.Equal(t, domain.UserID("u1"), got.Identity().ID)

	_, ok = r.GetSession("s2")
	assert.False(t, ok)
}

func TestRegistryTracksJoinedRooms(t *testing.T) {
	r := NewRegistry()
	r.Bind("s1", session("u1"), nil)

	r.TrackJoin("s1", "L1")
	r.TrackJoin("s1", "L2")
	r.TrackJoin("s1", "L1") // repeat, set semantics

	assert.ElementsMatch(t, []domain.RoomID{"L1", "L2"}, r.JoinedRooms("s1"))
}

func TestRegistryTrackJoinUnknownSessionIgnored(t *testing.T) {
	r := NewRegistry()
	r.TrackJoin("ghost", "L1")
	assert.Empty(t, r.JoinedRooms("ghost"))
}

func TestRegistryUnbindReturnsHeldRooms(t *testing.T) {
	r := NewRegistry()
	r.Bind("s1", session("u1"), nil)
	r.TrackJoin("s1", "L1")
	r.TrackJoin("s1", "L2")

	rooms := r.Unbind("s1")

	assert.ElementsMatch(t, []domain.RoomID{"L1", "L2"}, rooms)
	_, ok := r.GetSession("s1")
	assert.False(t, ok)
	assert.Nil(t, r.Unbind("s1"))
}

func TestRegistryCancelFiresSessionCancel(t *testing.T) {
	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	r.Bind("s1", session("u1"), cancel)

	require.True(t, r.Cancel("s1"))

	select {
	case <-ctx.Done():
	default:
		t.Fatal("cancel did not fire")
	}

	assert.False(t, r.Cancel("ghost"))
}
