package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulive/lecturechat/internal/core"
	"github.com/edulive/lecturechat/internal/domain"
)

func newOrchestrator() *Orchestrator {
	return &Orchestrator{
		Registry: NewRegistry(),
		Rooms:    NewRoomManager(30),
	}
}

func TestOrchestratorJoinRequiresRoomID(t *testing.T) {
	o := newOrchestrator()
	o.Registry.Bind("s1", session("u1"), nil)

	_, err := o.Join("s1", "")

	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "roomId", ve.Field)
}

func TestOrchestratorJoinReplaysHistoryThenTracks(t *testing.T) {
	o := newOrchestrator()
	o.Registry.Bind("s1", session("u1"), nil)
	o.Rooms.GetOrCreate("L1").Post(domain.Message{SenderID: "u9", Text: "earlier"}, core.Frame("x"))

	replay, err := o.Join("s1", "L1")

	require.NoError(t, err)
	require.Len(t, replay, 1)
	assert.Equal(t, "earlier", replay[0].Text)
	assert.Equal(t, []domain.RoomID{"L1"}, o.Registry.JoinedRooms("s1"))
}

func TestOrchestratorDuplicateJoinRefusedWithoutMutation(t *testing.T) {
	o := newOrchestrator()
	o.Registry.Bind("s1", session("u1"), nil)

	_, err := o.Join("s1", "L1")
	require.NoError(t, err)

	_, err = o.Join("s1", "L1")
	assert.True(t, errors.Is(err, ErrAlreadyMember))

	room, _ := o.Rooms.Get("L1")
	assert.Equal(t, 1, room.MemberCount())
}

func TestOrchestratorJoinMultipleRooms(t *testing.T) {
	o := newOrchestrator()
	o.Registry.Bind("s1", session("u1"), nil)

	_, err := o.Join("s1", "L1")
	require.NoError(t, err)
	_, err = o.Join("s1", "L2")
	require.NoError(t, err)

	assert.ElementsMatch(t, []domain.RoomID{"L1", "L2"}, o.Registry.JoinedRooms("s1"))
}

func TestOrchestratorPostValidationOrder(t *testing.T) {
	o := newOrchestrator()

	// roomId checked before message
	_, err := o.Post("", domain.Message{Text: ""}, core.Frame("x"))
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "roomId", ve.Field)

	_, err = o.Post("L1", domain.Message{Text: ""}, core.Frame("x"))
	ve, ok = AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "message", ve.Field)
}

func TestOrchestratorPostFailureLeavesHistoryUntouched(t *testing.T) {
	o := newOrchestrator()
	room := o.Rooms.GetOrCreate("L1")

	_, err := o.Post("L1", domain.Message{SenderID: "u1", Text: ""}, core.Frame("x"))

	require.Error(t, err)
	assert.Empty(t, room.History())
}

func TestOrchestratorPostAppendsAndFansOut(t *testing.T) {
	o := newOrchestrator()
	o.Registry.Bind("s1", session("u1"), nil)
	_, err := o.Join("s1", "L1")
	require.NoError(t, err)

	res, err := o.Post("L1", domain.Message{SenderID: "u1", Text: "hello"}, core.Frame("x"))

	require.NoError(t, err)
	assert.Equal(t, 1, res.SentTo)
	room, _ := o.Rooms.Get("L1")
	require.Len(t, room.History(), 1)
	assert.Equal(t, "hello", room.History()[0].Text)
}

func TestOrchestratorRoomIsolation(t *testing.T) {
	o := newOrchestrator()
	for i, room := range []domain.RoomID{"L1", "L2"} {
		sid := core.SessionID(fmt.Sprintf("s%d", i))
		o.Registry.Bind(sid, session(fmt.Sprintf("u%d", i)), nil)
		_, err := o.Join(sid, room)
		require.NoError(t, err)
	}

	_, err := o.Post("L1", domain.Message{SenderID: "u0", Text: "only L1"}, core.Frame("x"))
	require.NoError(t, err)

	l1, _ := o.Rooms.Get("L1")
	l2, _ := o.Rooms.Get("L2")
	assert.Len(t, l1.History(), 1)
	assert.Empty(t, l2.History())
}

func TestOrchestratorDisconnectReleasesAllMemberships(t *testing.T) {
	o := newOrchestrator()
	o.Registry.Bind("s1", session("u1"), nil)
	_, err := o.Join("s1", "L1")
	require.NoError(t, err)
	_, err = o.Join("s1", "L2")
	require.NoError(t, err)

	o.Disconnect("s1")

	l1, _ := o.Rooms.Get("L1")
	l2, _ := o.Rooms.Get("L2")
	assert.Equal(t, 0, l1.MemberCount())
	assert.Equal(t, 0, l2.MemberCount())
	assert.Empty(t, o.Registry.JoinedRooms("s1"))
}

func TestOrchestratorDisconnectThenRejoinAllowed(t *testing.T) {
	o := newOrchestrator()
	o.Registry.Bind("s1", session("u1"), nil)
	_, err := o.Join("s1", "L1")
	require.NoError(t, err)

	o.Disconnect("s1")

	// fresh handle after a reconnect joins cleanly
	o.Registry.Bind("s2", session("u1"), nil)
	_, err = o.Join("s2", "L1")
	assert.NoError(t, err)
}

func TestRoomManagerListsCounts(t *testing.T) {
	o := newOrchestrator()
	o.Registry.Bind("s1", session("u1"), nil)
	_, err := o.Join("s1", "L1")
	require.NoError(t, err)
	o.Rooms.GetOrCreate("L2")

	infos := o.Rooms.List()
	require.Len(t, infos, 2)
	counts := map[domain.RoomID]int{}
	for _, info := range infos {
		counts[info.ID] = info.MemberCount
	}
	assert.Equal(t, 1, counts["L1"])
	assert.Equal(t, 0, counts["L2"])
}
