package database

import (
	"database/sql"
	"fmt"
	"time"

	"confession-bot/utils"
)

// CleanupOldEntries deletes audit rows older than retentionDays. It runs
// from the hourly maintenance job; a non-positive retention disables it.
func CleanupOldEntries(db *sql.DB, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays).Unix()

	stmt, err := db.Prepare("DELETE FROM audit_log WHERE timestamp < ?")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare audit cleanup statement: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old audit entries: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		utils.Info("AuditCleanup", "Cleanup", fmt.Sprintf("Removed %d audit entries older than %d days", deleted, retentionDays))
	}
	return deleted, nil
}
