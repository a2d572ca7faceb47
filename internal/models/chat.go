package models

// ChatKind tags a conversation as one-on-one or group.
type ChatKind string

const (
	ChatKindUser  ChatKind = "user"
	ChatKindGroup ChatKind = "group"
)

// Chat references a conversation. Exactly one chat is active at a time;
// switching it is the sole trigger for reloading the message list.
type Chat struct {
	Kind        ChatKind `json:"kind"`
	TargetID    string   `json:"target_id"`
	Name        string   `json:"name"`
	Unread      int      `json:"unread,omitempty"`
	LastMessage string   `json:"last_message,omitempty"`
}

// ID returns the conversation key messages are stored under.
func (c Chat) ID() string {
	return string(c.Kind) + ":" + c.TargetID
}

// Group is a named set of members. Read-only to the session core.
type Group struct {
	ID        string   `db:"id" json:"id"`
	Name      string   `db:"name" json:"name"`
	MemberIDs []string `json:"member_ids"`
	CreatorID string   `db:"creator_id" json:"creator_id"`
}
