package models

import "time"

// Reply is a single anonymous reply. Replies are owned by their parent
// confession and are never addressable on their own.
type Reply struct {
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Confession represents one anonymous confession and its reply thread.
type Confession struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	AccountCreated time.Time `json:"account_created"`
	CreatedAt      time.Time `json:"created_at"`
	MessageID      string    `json:"message_id"`
	ChannelID      string    `json:"channel_id"`
	GuildID        string    `json:"guild_id"`
	JumpURL        string    `json:"jump_url"`
	ThreadID       string    `json:"thread_id,omitempty"`
	Replies        []Reply   `json:"replies"`
}

// Clone returns a deep copy so callers can read the record without
// holding the ledger lock.
func (c *Confession) Clone() *Confession {
	out := *c
	out.Replies = make([]Reply, len(c.Replies))
	copy(out.Replies, c.Replies)
	return &out
}
