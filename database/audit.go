package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"confession-bot/models"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

// InitDB opens the audit database, creating the file and its table on first
// use. Submissions are anonymous in the channel, so this log is the only
// place the author identity is kept.
func InitDB(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createAuditTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit table: %w", err)
	}

	log.Println("Successfully connected to the audit database at", dbPath)
	return db, nil
}

// createAuditTable creates the 'audit_log' table if it doesn't exist.
func createAuditTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS audit_log (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        guild_id TEXT,
        kind TEXT,
        entity_id INTEGER,
        action TEXT,
        user_id TEXT,
        username TEXT,
        content TEXT,
        detail TEXT,
        timestamp INTEGER
    );`
	_, err := db.Exec(query)
	return err
}

// InsertAuditEntry records one action in the audit log.
func InsertAuditEntry(db *sql.DB, entry models.AuditEntry) error {
	query := `INSERT INTO audit_log (guild_id, kind, entity_id, action, user_id, username, content, detail, timestamp)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for audit entry: %w", err)
	}
	defer stmt.Close()

	ts := entry.Timestamp
	if ts == 0 {
		ts = time.Now().Unix()
	}
	_, err = stmt.Exec(
		entry.GuildID,
		entry.Kind,
		entry.EntityID,
		entry.Action,
		entry.UserID,
		entry.Username,
		entry.Content,
		entry.Detail,
		ts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry for %s #%d: %w", entry.Kind, entry.EntityID, err)
	}
	return nil
}

// GetEntriesForEntity returns the audit trail of one confession or
// suggestion, oldest first.
func GetEntriesForEntity(db *sql.DB, guildID, kind string, entityID int64) ([]models.AuditEntry, error) {
	query := `SELECT id, guild_id, kind, entity_id, action, user_id, username, content, detail, timestamp
              FROM audit_log WHERE guild_id = ? AND kind = ? AND entity_id = ? ORDER BY id`
	rows, err := db.Query(query, guildID, kind, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.GuildID, &e.Kind, &e.EntityID, &e.Action, &e.UserID, &e.Username, &e.Content, &e.Detail, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
