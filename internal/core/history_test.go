package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulive/lecturechat/internal/domain"
)

func msg(text string) domain.Message {
	return domain.Message{SenderID: "u1", SenderName: "asha", Text: text}
}

func TestHistoryBufferEmpty(t *testing.T) {
	h := NewHistoryBuffer(30)

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Snapshot())
}

func TestHistoryBufferKeepsAppendOrder(t *testing.T) {
	h := NewHistoryBuffer(30)
	for i := 0; i < 5; i++ {
		h.Append(msg(fmt.Sprintf("m%d", i)))
	}

	snap := h.Snapshot()
	require.Len(t, snap, 5)
	for i, m := range snap {
		assert.Equal(t, fmt.Sprintf("m%d", i), m.Text)
	}
}

func TestHistoryBufferEvictsOldest(t *testing.T) {
	h := NewHistoryBuffer(30)
	for i := 0; i < 35; i++ {
		h.Append(msg(fmt.Sprintf("m%d", i)))
	}

	snap := h.Snapshot()
	require.Len(t, snap, 30)
	// the last 30 of 35: m5..m34
	assert.Equal(t, "m5", snap[0].Text)
	assert.Equal(t, "m34", snap[29].Text)
	for i, m := range snap {
		assert.Equal(t, fmt.Sprintf("m%d", i+5), m.Text)
	}
}

func TestHistoryBufferNeverExceedsCapacity(t *testing.T) {
	h := NewHistoryBuffer(30)
	for i := 0; i < 200; i++ {
		h.Append(msg(fmt.Sprintf("m%d", i)))
		assert.LessOrEqual(t, h.Len(), 30)
	}
}

func TestHistoryBufferSnapshotIsACopy(t *testing.T) {
	h := NewHistoryBuffer(30)
	h.Append(msg("first"))

	snap := h.Snapshot()
	snap[0].Text = "mutated"

	assert.Equal(t, "first", h.Snapshot()[0].Text)
}

func TestHistoryBufferDefaultCapacity(t *testing.T) {
	h := NewHistoryBuffer(0)
	for i := 0; i < DefaultHistorySize+10; i++ {
		h.Append(msg("x"))
	}
	assert.Equal(t, DefaultHistorySize, h.Len())
}
