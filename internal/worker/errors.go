package worker

import "errors"

// ErrQueueFull is returned when a job could not be queued
var ErrQueueFull = errors.New("worker queue full")
