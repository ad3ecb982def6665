package scheduler

// Log messages
const (
	LogMsgSchedulerStarted  = "Scheduler started"
	LogMsgSchedulerStopping = "Shutting down scheduler"
	LogMsgSchedulerStopped  = "Scheduler shutdown complete"
	LogMsgSchedulerTimeout  = "Scheduler shutdown timeout"
	LogMsgPassFailed        = "Scheduled pass failed"
)
