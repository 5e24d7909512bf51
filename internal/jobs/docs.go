// Package jobs provides the durable reminder scheduler and its background
// dispatcher.
//
// Reminders are one-shot: a booking persists a row through ports.JobStore and
// the dispatcher, a cron-based poller using github.com/robfig/cron/v3, picks
// the row up once its fire time has passed. Because bookings live in the
// database they survive process restarts; a reminder whose fire time passed
// while the service was down fires on the first tick after startup.
//
// # Components
//
// 1. DurableScheduler - implements ports.Scheduler by persisting job rows
// 2. ExpiryReminderJob - polls due pending rows every second and delivers them
// 3. JobManager - starts and stops all background jobs as a unit
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reminderJob, log)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal().Err(err).Msg("failed to start jobs")
//	}
//	defer jobManager.StopAll()
//
// # Delivery semantics
//
// Delivery is at-least-once. Each pickup increments the row's attempt counter;
// a row whose counter reaches the limit is marked failed and never retried.
// A reminder whose order already left the bidding phase is settled without
// notifying anyone.
package jobs
