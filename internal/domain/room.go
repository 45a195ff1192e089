package domain

// RoomID identifies a lecture-scoped broadcast group. Opaque, client-chosen.
type RoomID string
