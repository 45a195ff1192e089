package chat

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/edulive/lecturechat/internal/core"
)

// Wire event names. These are the observable contract with the lecture
// client; renaming any of them breaks deployed front-ends.
const (
	EventAuthError       = "authenticationError"
	EventUserDetails     = "userDetails"
	EventJoinLecture     = "joinLecture"
	EventError           = "error"
	EventLectureMessages = "lectureMessages"
	EventJoinSuccess     = "joinSuccess"
	EventChatMessage     = "chat message"
	EventValidationError = "validationError"
)

// Envelope frames every event in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Response is the server->client payload shape: a status code, a human
// message, and optional event-specific data.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// FieldError is the validationError payload; Field names the missing input.
type FieldError struct {
	Code    int    `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ChatPayload is the client->server "chat message" data.
type ChatPayload struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

func encodeEvent(event string, payload any) (core.Frame, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return nil, err
	}
	return core.Frame(frame), nil
}

// mustEncode is for payloads built from our own types; a marshal failure
// there is a programming error, logged and dropped rather than propagated.
func mustEncode(event string, payload any) core.Frame {
	frame, err := encodeEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "chat").Str("event", event).Msg("encode event")
		return nil
	}
	return frame
}
