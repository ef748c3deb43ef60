package database

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"confession-bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAndGetEntries(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, InsertAuditEntry(db, models.AuditEntry{
		GuildID:  "g1",
		Kind:     "confession",
		EntityID: 1,
		Action:   "submit",
		UserID:   "u1",
		Username: "user#1",
		Content:  "hello",
		Detail:   "https://jump/1",
	}))
	require.NoError(t, InsertAuditEntry(db, models.AuditEntry{
		GuildID:  "g1",
		Kind:     "confession",
		EntityID: 1,
		Action:   "reply",
		UserID:   "u2",
		Username: "user#2",
		Content:  "a reply",
	}))
	require.NoError(t, InsertAuditEntry(db, models.AuditEntry{
		GuildID:  "g1",
		Kind:     "suggestion",
		EntityID: 1,
		Action:   "submit",
		UserID:   "u3",
	}))

	entries, err := GetEntriesForEntity(db, "g1", "confession", 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Oldest first, identity retained.
	assert.Equal(t, "submit", entries[0].Action)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, "hello", entries[0].Content)
	assert.Equal(t, "reply", entries[1].Action)
	assert.NotZero(t, entries[0].Timestamp)

	// The suggestion trail is separate even though the entity ID collides.
	entries, err = GetEntriesForEntity(db, "g1", "suggestion", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "u3", entries[0].UserID)
}

func TestGetEntries_Empty(t *testing.T) {
	db := newTestDB(t)

	entries, err := GetEntriesForEntity(db, "g1", "confession", 42)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCleanupOldEntries(t *testing.T) {
	db := newTestDB(t)

	old := time.Now().AddDate(0, 0, -120).Unix()
	require.NoError(t, InsertAuditEntry(db, models.AuditEntry{
		GuildID: "g1", Kind: "confession", EntityID: 1, Action: "submit", Timestamp: old,
	}))
	require.NoError(t, InsertAuditEntry(db, models.AuditEntry{
		GuildID: "g1", Kind: "confession", EntityID: 2, Action: "submit",
	}))

	deleted, err := CleanupOldEntries(db, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, err := GetEntriesForEntity(db, "g1", "confession", 2)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCleanupOldEntries_DisabledRetention(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, InsertAuditEntry(db, models.AuditEntry{
		GuildID: "g1", Kind: "confession", EntityID: 1, Action: "submit", Timestamp: 1,
	}))

	deleted, err := CleanupOldEntries(db, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
