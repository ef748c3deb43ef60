package ledger

import (
	"testing"
	"time"

	"confession-bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_SubmitSuggestion(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, models.StatusPending, rec.Status)
	assert.Empty(t, rec.Upvotes)
	assert.Empty(t, rec.Downvotes)
	assert.Empty(t, rec.ImageURL)

	id, ok := engine.ResolveSuggestion(rec.MessageID)
	require.True(t, ok)
	assert.Equal(t, rec.ID, id)
}

func TestEngine_BeginSuggestion_EmptyInput(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.BeginSuggestion("g1", "u1", "u1#0", "  ", "body")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = engine.BeginSuggestion("g1", "u1", "u1#0", "title", "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestEngine_AbortSuggestion_RollsBackNewestID(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec, err := engine.BeginSuggestion("g1", "u1", "u1#0", "Add X", "please")
	require.NoError(t, err)
	require.NoError(t, engine.AbortSuggestion(rec.ID))

	next := submitSuggestion(t, engine, "u1", "Add Y", "retry")
	assert.Equal(t, rec.ID, next.ID)
}

func TestEngine_SetStatus(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")

	_, err := engine.SetStatus(rec.ID, models.StatusApproved, false)
	assert.ErrorIs(t, err, ErrForbidden)

	got, ok := engine.Suggestion(rec.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, got.Status, "a forbidden call must not change anything")

	updated, err := engine.SetStatus(rec.ID, models.StatusApproved, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)

	got, ok = engine.Suggestion(rec.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusApproved, got.Status)
}

func TestEngine_SetStatus_Errors(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")

	_, err := engine.SetStatus(999, models.StatusApproved, true)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = engine.SetStatus(rec.ID, "rejected", true)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestEngine_SetStatus_PersistFailureRollsBack(t *testing.T) {
	engine, store := newTestEngine(t)
	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")

	blockPersist(t, store)
	_, err := engine.SetStatus(rec.ID, models.StatusApproved, true)
	require.Error(t, err)

	got, ok := engine.Suggestion(rec.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, got.Status)

	unblockPersist(t, store)
	reloaded, err := NewEngine(store)
	require.NoError(t, err)
	got, ok = reloaded.Suggestion(rec.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestEngine_RequestImage_Authorization(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "author", "Add X", "please add X")

	assert.ErrorIs(t, engine.RequestImage(999, "author", false), ErrNotFound)
	assert.ErrorIs(t, engine.RequestImage(rec.ID, "stranger", false), ErrForbidden)

	// The author and moderators may request.
	assert.NoError(t, engine.RequestImage(rec.ID, "author", false))
	assert.NoError(t, engine.RequestImage(rec.ID, "stranger", true))
}

func TestEngine_AttachImage_Scenario(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "author", "Add X", "please add X")

	require.NoError(t, engine.RequestImage(rec.ID, "author", false))
	assert.True(t, engine.HasPendingImage(rec.ID))

	got, matched, err := engine.AttachImage("g1", rec.ChannelID, "author", "https://cdn.example/url1", "")
	require.NoError(t, err)
	require.True(t, matched)
	assert.Equal(t, "https://cdn.example/url1", got.ImageURL)
	assert.False(t, engine.HasPendingImage(rec.ID))

	// A second unrelated image from the same author is a no-op.
	_, matched, err = engine.AttachImage("g1", rec.ChannelID, "author", "https://cdn.example/url2", "")
	require.NoError(t, err)
	assert.False(t, matched)

	got, ok := engine.Suggestion(rec.ID)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example/url1", got.ImageURL)
}

func TestEngine_AttachImage_ExplicitReference(t *testing.T) {
	engine, _ := newTestEngine(t)
	first := submitSuggestion(t, engine, "author", "Add X", "please add X")
	second := submitSuggestion(t, engine, "author", "Add Y", "please add Y")

	require.NoError(t, engine.RequestImage(first.ID, "author", false))
	require.NoError(t, engine.RequestImage(second.ID, "author", false))

	// Replying to the first suggestion's message targets it even though the
	// second request is newer.
	got, matched, err := engine.AttachImage("g1", first.ChannelID, "author", "https://cdn.example/img.png", first.MessageID)
	require.NoError(t, err)
	require.True(t, matched)
	assert.Equal(t, first.ID, got.ID)

	// The second request is still outstanding.
	assert.False(t, engine.HasPendingImage(first.ID))
	assert.True(t, engine.HasPendingImage(second.ID))
}

func TestEngine_AttachImage_NoPendingRequest(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "author", "Add X", "please add X")

	_, matched, err := engine.AttachImage("g1", rec.ChannelID, "author", "https://cdn.example/img.png", "")
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestEngine_AttachImage_ExpiredRequest(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "author", "Add X", "please add X")

	clock := &fakeClock{now: time.Now()}
	engine.pending.now = clock.Now

	require.NoError(t, engine.RequestImage(rec.ID, "author", false))
	clock.Advance(PendingTTL + time.Minute)

	_, matched, err := engine.AttachImage("g1", rec.ChannelID, "author", "https://cdn.example/img.png", "")
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestEngine_CancelImage(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "author", "Add X", "please add X")

	require.NoError(t, engine.RequestImage(rec.ID, "author", false))
	assert.ErrorIs(t, engine.CancelImage(rec.ID, "stranger", false), ErrForbidden)

	require.NoError(t, engine.CancelImage(rec.ID, "author", false))
	assert.False(t, engine.HasPendingImage(rec.ID))

	// Cancelling with nothing pending is fine.
	require.NoError(t, engine.CancelImage(rec.ID, "author", false))
}

func TestEngine_ImageURLSurvivesRestart(t *testing.T) {
	engine, store := newTestEngine(t)
	rec := submitSuggestion(t, engine, "author", "Add X", "please add X")

	require.NoError(t, engine.RequestImage(rec.ID, "author", false))
	_, matched, err := engine.AttachImage("g1", rec.ChannelID, "author", "https://cdn.example/img.png", "")
	require.NoError(t, err)
	require.True(t, matched)

	reloaded, err := NewEngine(store)
	require.NoError(t, err)
	got, ok := reloaded.Suggestion(rec.ID)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example/img.png", got.ImageURL)

	// Pending requests are in-memory only and do not survive a restart.
	assert.False(t, reloaded.HasPendingImage(rec.ID))
}
