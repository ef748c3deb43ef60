package bot

import (
	"fmt"
	"log"

	"confession-bot/database"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var c *cron.Cron

// startScheduler starts the hourly maintenance job: reap expired image
// requests and trim the audit log. Pending entries also expire lazily on
// every lookup; this just keeps the table from holding dead entries for
// guilds with no traffic.
func startScheduler(b *Bot) {
	log.Println("Initializing scheduler...")
	c = cron.New()
	_, err := c.AddFunc("@hourly", func() {
		if reaped := b.Ledger.Pending().ReapExpired(); reaped > 0 {
			log.Printf("Reaped %d expired image requests.", reaped)
		}

		retention := viper.GetInt("bot.auditRetentionDays")
		if _, err := database.CleanupOldEntries(b.Audit, retention); err != nil {
			log.Printf("Audit cleanup failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Could not set up cron job: %v", err)
	}
	c.Start()
	log.Println("Maintenance job scheduled to run hourly.")
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		fmt.Println("Scheduler stopped.")
	}
}
