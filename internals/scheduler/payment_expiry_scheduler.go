package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"learnhub_backend/internals/features/payments/service"
)

// StartPaymentExpiryScheduler sweeps stale pending payments to failed on a
// fixed interval. Runs until the process exits.
func StartPaymentExpiryScheduler(db *gorm.DB, gateway service.Gateway) {
	payments := service.NewPaymentService(db, gateway)

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			swept, err := payments.ExpireStalePayments(ctx, service.StalePaymentTTL)
			cancel()
			if err != nil {
				log.Printf("[SCHEDULER] payment expiry sweep failed: %v", err)
				continue
			}
			if swept > 0 {
				log.Printf("[SCHEDULER] expired %d stale pending payments", swept)
			}
		}
	}()
}
