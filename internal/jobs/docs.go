// Package jobs provides scheduled background tasks for the tasking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations each process role needs.
//
// # Available Jobs
//
// 1. ScheduleFiringJob - Runs every second on the scheduler to enqueue tasks for due schedules
// 2. StaleWorkerReaperJob - Runs every ten seconds on the resource manager to reap workers that stopped heartbeating
// 3. WorkerHeartbeatJob - Runs every five seconds on each worker to record liveness
// 4. LeaseRenewalJob - Runs on singleton processes to keep their exclusivity lease alive
//
// # Usage
//
// Each role composes the jobs it needs through JobManager:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewScheduleFiringJob(fireHandler, logger),
//		jobs.NewStaleWorkerReaperJob(reapHandler, workerTimeout, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Schedule firing ignores the expected no-schedules-due outcome
// - Reaper and heartbeat log all errors as they indicate system issues
// - Lease renewal reports a lost lease through a channel so the process can exit
// - Failed job starts will stop any already running jobs
package jobs
