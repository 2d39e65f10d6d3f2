// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartCompletorReconciler runs the completor-set reconciliation on a fixed
// interval so best-effort completor writes that were lost after a committed
// submission get replayed from the submission table.
func (s *ChallengeService) StartCompletorReconciler(interval time.Duration) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			healed, err := s.ReconcileCompletors()
			if err != nil {
				log.Printf("[Reconciler] completor rebuild failed: %v", err)
				return
			}
			if healed > 0 {
				log.Printf("[Reconciler] restored %d missing completor rows", healed)
			}
		}),
	)
}
