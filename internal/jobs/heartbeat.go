package jobs

import (
	"fmt"
	"time"
)

const heartbeatTimestamp = "02/01/2006-15:04:05"

// HeartbeatJob checks that the API answers and logs an alive line.
type HeartbeatJob struct {
	API     API
	LogPath string
	Now     func() time.Time
}

// Name implements Job.
func (j *HeartbeatJob) Name() string { return "heartbeat" }

// Run implements cron.Job.
func (j *HeartbeatJob) Run() {
	stamp := now(j.Now).Format(heartbeatTimestamp)

	line := fmt.Sprintf("%s CRM is alive", stamp)
	if reply, err := j.API.Hello(); err != nil {
		line += fmt.Sprintf(" - hello failed: %v", err)
	} else {
		line += fmt.Sprintf(" - hello: %s", reply)
	}
	record(j.Name(), j.LogPath, line)
}
