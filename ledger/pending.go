package ledger

import (
	"sync"
	"time"
)

// PendingTTL is how long an image request stays matchable.
const PendingTTL = 30 * time.Minute

// PendingImageRequest marks a suggestion as awaiting an image upload from
// a specific user. Entries live only in memory; a restart drops them and
// the user simply presses the button again.
type PendingImageRequest struct {
	GuildID   string
	ChannelID string
	MessageID string // the suggestion's message
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time

	seq uint64 // creation order, for latest-wins ties
}

type pendingKey struct {
	GuildID   string
	MessageID string
}

// PendingTable correlates a later image upload with the suggestion that
// requested it. It has its own lock so slow ledger persists never block
// correlation lookups, and vice versa. Expiry is lazy: entries are reaped
// before every lookup rather than by a dedicated timer, though the hourly
// maintenance job also calls ReapExpired to keep the table small.
type PendingTable struct {
	mu      sync.Mutex
	entries map[pendingKey]*PendingImageRequest
	seq     uint64
	now     func() time.Time
}

// NewPendingTable returns an empty table using the wall clock.
func NewPendingTable() *PendingTable {
	return &PendingTable{
		entries: make(map[pendingKey]*PendingImageRequest),
		now:     time.Now,
	}
}

// Request upserts the pending entry for (guildID, messageID). A repeated
// request replaces the previous entry and restarts the TTL.
func (t *PendingTable) Request(guildID, channelID, messageID, userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.seq++
	t.entries[pendingKey{guildID, messageID}] = &PendingImageRequest{
		GuildID:   guildID,
		ChannelID: channelID,
		MessageID: messageID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(PendingTTL),
		seq:       t.seq,
	}
}

// Clear removes the entry for (guildID, messageID) if present.
func (t *PendingTable) Clear(guildID, messageID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, pendingKey{guildID, messageID})
}

// Has reports whether an unexpired entry exists for (guildID, messageID).
func (t *PendingTable) Has(guildID, messageID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reapLocked()
	_, ok := t.entries[pendingKey{guildID, messageID}]
	return ok
}

// Match resolves an incoming image to the suggestion message awaiting it.
// An explicit reply-reference to the suggestion message wins outright when
// its user and channel agree. Otherwise the most recently created entry for
// (guild, channel, user) wins. Returns the suggestion's message ID.
//
// Match does not consume the entry; use MatchAndConsume when the caller
// will act on the result.
func (t *PendingTable) Match(guildID, channelID, userID, explicitMessageID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reapLocked()
	return t.matchLocked(guildID, channelID, userID, explicitMessageID)
}

// MatchAndConsume resolves like Match and removes the winning entry in the
// same critical section, so concurrent uploads cannot both claim it.
func (t *PendingTable) MatchAndConsume(guildID, channelID, userID, explicitMessageID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reapLocked()
	target, ok := t.matchLocked(guildID, channelID, userID, explicitMessageID)
	if !ok {
		return "", false
	}
	delete(t.entries, pendingKey{guildID, target})
	return target, true
}

func (t *PendingTable) matchLocked(guildID, channelID, userID, explicitMessageID string) (string, bool) {
	if explicitMessageID != "" {
		if req, ok := t.entries[pendingKey{guildID, explicitMessageID}]; ok {
			if req.UserID == userID && req.ChannelID == channelID {
				return req.MessageID, true
			}
		}
	}

	var best *PendingImageRequest
	for _, req := range t.entries {
		if req.GuildID != guildID || req.ChannelID != channelID || req.UserID != userID {
			continue
		}
		if best == nil || req.seq > best.seq {
			best = req
		}
	}
	if best == nil {
		return "", false
	}
	return best.MessageID, true
}

// ReapExpired removes every expired entry and returns how many were dropped.
func (t *PendingTable) ReapExpired() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reapLocked()
}

// Len returns the number of live entries, expired ones included until the
// next reap.
func (t *PendingTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *PendingTable) reapLocked() int {
	now := t.now()
	reaped := 0
	for key, req := range t.entries {
		if !req.ExpiresAt.After(now) {
			delete(t.entries, key)
			reaped++
		}
	}
	return reaped
}
