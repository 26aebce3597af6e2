package watcher

import "time"

const (
	defaultInterval    = 30 * time.Second
	defaultWorkerCount = 4
)
