package models

// AuditEntry is one row of the private audit log. It carries the author
// identity that is withheld from the public channel.
type AuditEntry struct {
	ID        int64  `db:"id"`
	GuildID   string `db:"guild_id"`
	Kind      string `db:"kind"`      // "confession" or "suggestion"
	EntityID  int64  `db:"entity_id"` // ledger ID within the kind
	Action    string `db:"action"`    // "submit", "reply", "status", "image"
	UserID    string `db:"user_id"`
	Username  string `db:"username"`
	Content   string `db:"content"`
	Detail    string `db:"detail"` // status value, image URL, jump link
	Timestamp int64  `db:"timestamp"`
}
