package domain

// Message is one chat line as seen by every room member.
// Immutable once created; ordering is the append order into the room history.
type Message struct {
	SenderID   UserID `json:"senderId"`
	SenderName string `json:"senderName"`
	SenderPic  string `json:"senderPic"`
	Text       string `json:"message"`
}

// NewMessage stamps a chat line with the sender's resolved identity.
func NewMessage(from Identity, text string) Message {
	return Message{
		SenderID:   from.ID,
		SenderName: from.Username,
		SenderPic:  from.ProfilePic,
		Text:       text,
	}
}
