package ledger

import (
	"strings"
	"time"

	"confession-bot/models"
)

// BeginSuggestion allocates the next suggestion ID and stores a provisional
// record. Same two-phase contract as BeginConfession.
func (e *Engine) BeginSuggestion(guildID, userID, username, title, text string) (*models.Suggestion, error) {
	title = strings.TrimSpace(title)
	text = strings.TrimSpace(text)
	if title == "" || text == "" {
		return nil, ErrEmptyInput
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.SuggestionCount++
	rec := &models.Suggestion{
		ID:        e.state.SuggestionCount,
		Title:     title,
		Content:   text,
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now().UTC(),
		GuildID:   guildID,
		Status:    models.StatusPending,
		Upvotes:   []string{},
		Downvotes: []string{},
	}
	e.state.Suggestions[rec.ID] = rec

	if err := e.persistLocked(); err != nil {
		delete(e.state.Suggestions, rec.ID)
		e.state.SuggestionCount--
		return nil, err
	}
	return rec.Clone(), nil
}

// CommitSuggestion stamps the posted message onto the provisional record
// and indexes it.
func (e *Engine) CommitSuggestion(id int64, messageID, channelID, jumpURL string) (*models.Suggestion, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Suggestions[id]
	if !ok {
		return nil, ErrNotFound
	}
	rec.MessageID = messageID
	rec.ChannelID = channelID
	rec.JumpURL = jumpURL
	e.state.MessageToSuggestion[messageID] = id

	if err := e.persistLocked(); err != nil {
		rec.MessageID, rec.ChannelID, rec.JumpURL = "", "", ""
		delete(e.state.MessageToSuggestion, messageID)
		return nil, err
	}
	return rec.Clone(), nil
}

// AbortSuggestion removes a provisional record after a failed post.
func (e *Engine) AbortSuggestion(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Suggestions[id]
	if !ok {
		return ErrNotFound
	}
	if rec.MessageID != "" {
		delete(e.state.MessageToSuggestion, rec.MessageID)
	}
	delete(e.state.Suggestions, id)
	prevCount := e.state.SuggestionCount
	if id == e.state.SuggestionCount {
		e.state.SuggestionCount--
	}

	if err := e.persistLocked(); err != nil {
		e.state.Suggestions[id] = rec
		if rec.MessageID != "" {
			e.state.MessageToSuggestion[rec.MessageID] = id
		}
		e.state.SuggestionCount = prevCount
		return err
	}
	return nil
}

// Suggestion returns a copy of the record, if it exists.
func (e *Engine) Suggestion(id int64) (*models.Suggestion, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Suggestions[id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// SetStatus moves a suggestion to a new moderation status. The capability
// check itself happens in the handler; isModerator carries its result.
func (e *Engine) SetStatus(id int64, status models.SuggestionStatus, isModerator bool) (*models.Suggestion, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.state.Suggestions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !isModerator {
		return nil, ErrForbidden
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	prev := rec.Status
	rec.Status = status

	if err := e.persistLocked(); err != nil {
		rec.Status = prev
		return nil, err
	}
	return rec.Clone(), nil
}

// RequestImage registers the requester's intent to attach an image to the
// suggestion. Only the author or a moderator may request. Re-requesting
// replaces the previous pending entry and restarts its clock.
func (e *Engine) RequestImage(id int64, requesterID string, isModerator bool) error {
	e.mu.Lock()
	rec, ok := e.state.Suggestions[id]
	if !ok {
		e.mu.Unlock()
		return ErrNotFound
	}
	if requesterID != rec.UserID && !isModerator {
		e.mu.Unlock()
		return ErrForbidden
	}
	guildID, channelID, messageID := rec.GuildID, rec.ChannelID, rec.MessageID
	e.mu.Unlock()

	if messageID == "" {
		return ErrNotFound
	}
	e.pending.Request(guildID, channelID, messageID, requesterID)
	return nil
}

// CancelImage withdraws a pending image request. Clearing an absent entry
// is not an error.
func (e *Engine) CancelImage(id int64, requesterID string, isModerator bool) error {
	e.mu.Lock()
	rec, ok := e.state.Suggestions[id]
	if !ok {
		e.mu.Unlock()
		return ErrNotFound
	}
	if requesterID != rec.UserID && !isModerator {
		e.mu.Unlock()
		return ErrForbidden
	}
	guildID, messageID := rec.GuildID, rec.MessageID
	e.mu.Unlock()

	e.pending.Clear(guildID, messageID)
	return nil
}

// HasPendingImage reports whether an unexpired image request exists for the
// suggestion, used to label the attach/cancel button.
func (e *Engine) HasPendingImage(id int64) bool {
	e.mu.Lock()
	rec, ok := e.state.Suggestions[id]
	if !ok {
		e.mu.Unlock()
		return false
	}
	guildID, messageID := rec.GuildID, rec.MessageID
	e.mu.Unlock()

	return e.pending.Has(guildID, messageID)
}

// AttachImage correlates an incoming image with the suggestion awaiting it.
// When no pending request matches, it returns (nil, false, nil) and the
// image is ignored. A successful match consumes the pending entry, so a
// second unrelated image from the same user does nothing.
func (e *Engine) AttachImage(guildID, channelID, posterID, imageURL, explicitMessageID string) (*models.Suggestion, bool, error) {
	// One-shot: match and removal happen under a single table lock, so two
	// concurrent uploads can never both claim the same entry.
	target, ok := e.pending.MatchAndConsume(guildID, channelID, posterID, explicitMessageID)
	if !ok {
		return nil, false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.state.MessageToSuggestion[target]
	if !ok {
		return nil, false, nil
	}
	rec, ok := e.state.Suggestions[id]
	if !ok {
		return nil, false, nil
	}
	prev := rec.ImageURL
	rec.ImageURL = imageURL

	if err := e.persistLocked(); err != nil {
		rec.ImageURL = prev
		return nil, false, err
	}
	return rec.Clone(), true, nil
}
