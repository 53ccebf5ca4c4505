// Package jobs provides scheduled background tasks for the order service.
//
// Jobs run on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// PaymentReconciliationJob sweeps gateway payments (chapa, telebirr) that are
// still pending and asks the gateway once about each of them. Final answers are
// written back through the same command the callback and the sync endpoint use,
// so a payment is settled at most once whichever path sees the answer first.
//
// # Usage
//
//	job := jobs.NewPaymentReconciliationJob(reconcileHandler, cfg.ReconcileSchedule, 0, logger)
//	manager := jobs.NewJobManager(job)
//
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// A sweep never stops on a single bad order: per-order errors are joined and
// logged once per run. Overlapping runs are skipped rather than queued.
package jobs
