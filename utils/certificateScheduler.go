package utils

import (
	"log"
	"time"

	"oakridge/database"
	courseModels "oakridge/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeCertificateScheduler sets up the daily certificate expiry sweep
func InitializeCertificateScheduler() {
	log.Println("[CERT-SCHEDULER] Initializing certificate scheduler...")

	c := cron.New()

	// Run daily at 2 AM to invalidate expired certificates
	c.AddFunc("0 2 * * *", func() {
		log.Println("[CERT-SCHEDULER] Running daily certificate expiry sweep...")
		ExpireCertificates()
	})

	c.Start()
	log.Println("[CERT-SCHEDULER] Certificate scheduler started - runs daily at 2 AM")
}

// ExpireCertificates marks certificates past ValidUntil as invalid.
// Verification already rejects expired rows on read; the sweep keeps the
// stored IsValid flag in line with reality.
func ExpireCertificates() {
	db := database.Database.Db
	now := time.Now()

	result := db.Model(&courseModels.Certificate{}).
		Where("is_valid = ? AND valid_until < ?", true, now).
		Update("is_valid", false)

	if result.Error != nil {
		log.Printf("[CERT-SCHEDULER] Error expiring certificates: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[CERT-SCHEDULER] Invalidated %d expired certificates", result.RowsAffected)
	}
}
