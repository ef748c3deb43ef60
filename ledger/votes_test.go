package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleVote_AddAndRemove(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")

	tally, err := engine.ToggleVote(rec.ID, "alice", VoteUp)
	require.NoError(t, err)
	assert.Equal(t, VoteTally{Up: 1, Down: 0}, tally)

	// Pressing the same button again un-votes.
	tally, err = engine.ToggleVote(rec.ID, "alice", VoteUp)
	require.NoError(t, err)
	assert.Equal(t, VoteTally{Up: 0, Down: 0}, tally)
}

func TestToggleVote_SwitchIsAtomic(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")

	_, err := engine.ToggleVote(rec.ID, "alice", VoteUp)
	require.NoError(t, err)

	tally, err := engine.ToggleVote(rec.ID, "alice", VoteDown)
	require.NoError(t, err)
	assert.Equal(t, VoteTally{Up: 0, Down: 1}, tally)

	got, ok := engine.Suggestion(rec.ID)
	require.True(t, ok)
	assert.NotContains(t, got.Upvotes, "alice")
	assert.Contains(t, got.Downvotes, "alice")
}

func TestToggleVote_Scenario(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")

	tally, err := engine.ToggleVote(rec.ID, "alice", VoteUp)
	require.NoError(t, err)
	assert.Equal(t, VoteTally{Up: 1, Down: 0}, tally)

	tally, err = engine.ToggleVote(rec.ID, "bob", VoteDown)
	require.NoError(t, err)
	assert.Equal(t, VoteTally{Up: 1, Down: 1}, tally)

	tally, err = engine.ToggleVote(rec.ID, "alice", VoteDown)
	require.NoError(t, err)
	assert.Equal(t, VoteTally{Up: 0, Down: 2}, tally)
}

func TestToggleVote_NotFound(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.ToggleVote(42, "alice", VoteUp)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleVote_PersistFailureRollsBack(t *testing.T) {
	engine, store := newTestEngine(t)
	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")

	blockPersist(t, store)
	_, err := engine.ToggleVote(rec.ID, "alice", VoteUp)
	require.Error(t, err)

	// The failed vote must not linger in memory.
	got, ok := engine.Suggestion(rec.ID)
	require.True(t, ok)
	assert.NotContains(t, got.Upvotes, "alice")

	// A later successful vote must not smuggle the failed one to disk.
	unblockPersist(t, store)
	_, err = engine.ToggleVote(rec.ID, "bob", VoteDown)
	require.NoError(t, err)

	reloaded, err := NewEngine(store)
	require.NoError(t, err)
	got, ok = reloaded.Suggestion(rec.ID)
	require.True(t, ok)
	assert.NotContains(t, got.Upvotes, "alice")
	assert.Equal(t, []string{"bob"}, got.Downvotes)
}

func TestToggleVote_PersistFailureRollsBackSwitch(t *testing.T) {
	engine, store := newTestEngine(t)
	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")

	_, err := engine.ToggleVote(rec.ID, "alice", VoteUp)
	require.NoError(t, err)

	blockPersist(t, store)
	_, err = engine.ToggleVote(rec.ID, "alice", VoteDown)
	require.Error(t, err)

	got, ok := engine.Suggestion(rec.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"alice"}, got.Upvotes)
	assert.Empty(t, got.Downvotes)
}

func TestToggleVote_PersistsAcrossRestart(t *testing.T) {
	engine, store := newTestEngine(t)
	rec := submitSuggestion(t, engine, "u1", "Add X", "please add X")

	_, err := engine.ToggleVote(rec.ID, "alice", VoteUp)
	require.NoError(t, err)
	_, err = engine.ToggleVote(rec.ID, "bob", VoteDown)
	require.NoError(t, err)

	reloaded, err := NewEngine(store)
	require.NoError(t, err)
	got, ok := reloaded.Suggestion(rec.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"alice"}, got.Upvotes)
	assert.Equal(t, []string{"bob"}, got.Downvotes)
}
