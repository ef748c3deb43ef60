package ledger

import (
	"strings"
	"time"

	"confession-bot/models"
)

// BeginConfession allocates the next confession ID and stores a provisional
// record without a message ID. The caller posts the Discord message while
// the lock is released, then either CommitConfession with the resulting
// message or AbortConfession if the post failed.
func (e *Engine) BeginConfession(guildID, userID, username string, accountCreated time.Time, text string) (*models.Confession, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.ConfessionCount++
	rec := &models.Confession{
		ID:             e.state.ConfessionCount,
		Content:        text,
		UserID:         userID,
		Username:       username,
		AccountCreated: accountCreated,
		CreatedAt:      time.Now().UTC(),
		GuildID:        guildID,
		Replies:        []models.Reply{},
	}
	e.state.Confessions[rec.ID] = rec

	if err := e.persistLocked(); err != nil {
		delete(e.state.Confessions, rec.ID)
		e.state.ConfessionCount--
		return nil, err
	}
	return rec.Clone(), nil
}

// CommitConfession stamps the posted message onto the provisional record
// and indexes it. The record is not resolvable by message until committed.
func (e *Engine) CommitConfession(id int64, messageID, channelID, jumpURL string) (*models.Confession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Confessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	rec.MessageID = messageID
	rec.ChannelID = channelID
	rec.JumpURL = jumpURL
	e.state.MessageToConfession[messageID] = id

	if err := e.persistLocked(); err != nil {
		rec.MessageID, rec.ChannelID, rec.JumpURL = "", "", ""
		delete(e.state.MessageToConfession, messageID)
		return nil, err
	}
	return rec.Clone(), nil
}

// AbortConfession removes a provisional record after a failed post. When the
// aborted record is the newest allocation, the counter rolls back too so the
// ID can be reused; otherwise the gap stays.
func (e *Engine) AbortConfession(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Confessions[id]
	if !ok {
		return ErrNotFound
	}
	if rec.MessageID != "" {
		delete(e.state.MessageToConfession, rec.MessageID)
	}
	delete(e.state.Confessions, id)
	prevCount := e.state.ConfessionCount
	if id == e.state.ConfessionCount {
		e.state.ConfessionCount--
	}

	if err := e.persistLocked(); err != nil {
		e.state.Confessions[id] = rec
		if rec.MessageID != "" {
			e.state.MessageToConfession[rec.MessageID] = id
		}
		e.state.ConfessionCount = prevCount
		return err
	}
	return nil
}

// Confession returns a copy of the record, if it exists.
func (e *Engine) Confession(id int64) (*models.Confession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Confessions[id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// AddReply appends an anonymous reply to a confession and returns the
// updated record for the caller to post into the reply thread.
func (e *Engine) AddReply(confessionID int64, userID, username, text string) (*models.Confession, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Confessions[confessionID]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Replies = append(rec.Replies, models.Reply{
		Content:   text,
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	})

	if err := e.persistLocked(); err != nil {
		rec.Replies = rec.Replies[:len(rec.Replies)-1]
		return nil, err
	}
	return rec.Clone(), nil
}

// SetConfessionThread records the reply thread created under the confession
// message, so later replies reuse it.
func (e *Engine) SetConfessionThread(id int64, threadID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Confessions[id]
	if !ok {
		return ErrNotFound
	}
	prev := rec.ThreadID
	rec.ThreadID = threadID

	if err := e.persistLocked(); err != nil {
		rec.ThreadID = prev
		return err
	}
	return nil
}
