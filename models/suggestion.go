package models

import "time"

// SuggestionStatus is the moderation state of a suggestion.
type SuggestionStatus string

const (
	StatusPending     SuggestionStatus = "pending"
	StatusApproved    SuggestionStatus = "approved"
	StatusDenied      SuggestionStatus = "denied"
	StatusImplemented SuggestionStatus = "implemented"
)

// ValidStatus reports whether s is one of the fixed status values.
func ValidStatus(s SuggestionStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied, StatusImplemented:
		return true
	}
	return false
}

// Suggestion represents one suggestion post with its votes and status.
// Upvotes and Downvotes hold user IDs; a user appears in at most one of
// the two slices.
type Suggestion struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	UserID    string           `json:"user_id"`
	Username  string           `json:"username"`
	CreatedAt time.Time        `json:"created_at"`
	MessageID string           `json:"message_id"`
	ChannelID string           `json:"channel_id"`
	GuildID   string           `json:"guild_id"`
	JumpURL   string           `json:"jump_url"`
	Status    SuggestionStatus `json:"status"`
	ImageURL  string           `json:"image_url,omitempty"`
	Upvotes   []string         `json:"upvotes"`
	Downvotes []string         `json:"downvotes"`
}

// Clone returns a deep copy so callers can read the record without
// holding the ledger lock.
func (s *Suggestion) Clone() *Suggestion {
	out := *s
	out.Upvotes = make([]string, len(s.Upvotes))
	copy(out.Upvotes, s.Upvotes)
	out.Downvotes = make([]string, len(s.Downvotes))
	copy(out.Downvotes, s.Downvotes)
	return &out
}
