package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"confession-bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Load_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "ledger.json"))

	state, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, int64(0), state.ConfessionCount)
	assert.Empty(t, state.Confessions)
	assert.NotNil(t, state.MessageToConfession)
	assert.NotNil(t, state.GuildConfigs)
}

func TestStore_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	state, err := loadSnapshot(t, path)
	require.NoError(t, err)

	// Corruption falls back to an empty ledger instead of failing startup.
	assert.Equal(t, int64(0), state.ConfessionCount)
	assert.Empty(t, state.Confessions)
}

func loadSnapshot(t *testing.T, path string) (*models.State, error) {
	t.Helper()
	return NewStore(path).Load()
}

func TestStore_Load_PartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"confession_count": 3}`), 0644))

	state, err := loadSnapshot(t, path)
	require.NoError(t, err)

	// Missing tables are allocated so later inserts don't hit nil maps.
	assert.Equal(t, int64(3), state.ConfessionCount)
	assert.NotNil(t, state.Confessions)
	assert.NotNil(t, state.MessageToConfession)
	assert.NotNil(t, state.Suggestions)
	assert.NotNil(t, state.MessageToSuggestion)
	assert.NotNil(t, state.GuildConfigs)
}

func TestStore_Load_RepairsHandEditedSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	doc := `{
        "confession_count": 1,
        "confessions": {
            "1": {"id": 1, "content": "a"},
            "5": {"id": 5, "content": "b"}
        },
        "suggestion_count": 0,
        "suggestions": {
            "2": {"id": 2, "title": "t", "content": "c", "status": "pending",
                  "upvotes": ["alice", "bob"], "downvotes": ["alice", "carol"]}
        }
    }`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	state, err := loadSnapshot(t, path)
	require.NoError(t, err)

	// Counters catch up to the highest record ID so the next allocation
	// cannot collide with an existing record.
	assert.Equal(t, int64(5), state.ConfessionCount)
	assert.Equal(t, int64(2), state.SuggestionCount)

	// Double vote-set membership resolves in favor of the upvote.
	rec := state.Suggestions[2]
	require.NotNil(t, rec)
	assert.Equal(t, []string{"alice", "bob"}, rec.Upvotes)
	assert.Equal(t, []string{"carol"}, rec.Downvotes)

	// Nil slices on sparse records come back allocated.
	assert.NotNil(t, state.Confessions[1].Replies)
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store := NewStore(path)

	state := models.NewState()
	state.ConfessionCount = 2
	state.Confessions[1] = &models.Confession{
		ID:        1,
		Content:   "hello",
		UserID:    "u1",
		Username:  "user#1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		MessageID: "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		JumpURL:   "https://discord.com/channels/g1/c1/m1",
		Replies: []models.Reply{
			{Content: "a reply", UserID: "u2", Username: "user#2", CreatedAt: time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)},
		},
	}
	state.MessageToConfession["m1"] = 1
	state.SuggestionCount = 1
	state.Suggestions[1] = &models.Suggestion{
		ID:        1,
		Title:     "Add X",
		Content:   "please add X",
		UserID:    "u3",
		CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		MessageID: "m2",
		Status:    models.StatusApproved,
		ImageURL:  "https://cdn.example/img.png",
		Upvotes:   []string{"alice"},
		Downvotes: []string{"bob"},
	}
	state.MessageToSuggestion["m2"] = 1
	state.GuildConfigs["g1"] = &models.GuildConfig{ConfessionChannelID: "c1", LogChannelID: "c9"}

	require.NoError(t, store.Persist(state))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestStore_Persist_LeavesNoTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store := NewStore(path)

	require.NoError(t, store.Persist(models.NewState()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")
}

func TestStore_Persist_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.json")
	store := NewStore(path)

	require.NoError(t, store.Persist(models.NewState()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_Persist_ReplacesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store := NewStore(path)

	first := models.NewState()
	first.ConfessionCount = 1
	require.NoError(t, store.Persist(first))

	second := models.NewState()
	second.ConfessionCount = 2
	require.NoError(t, store.Persist(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.ConfessionCount)
}
