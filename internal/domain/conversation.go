package domain

// StoredMessage is a single persisted conversation message.
type StoredMessage struct {
	PK             string
	SK             string
	ConversationID string
	Seq            int
	Role           string
	Content        string
	TTL            int64
}

// ConversationMeta stores aggregate conversation state.
type ConversationMeta struct {
	PK             string
	SK             string
	ConversationID string
	LastActivity   string
	Messages       int
	TTL            int64
}
