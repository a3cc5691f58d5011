package jobs

import (
	"fmt"
	"time"
)

const lowStockTimestamp = "02/01/2006-15:04:05"

// LowStockJob restocks products below the threshold and logs what changed.
type LowStockJob struct {
	API     API
	LogPath string
	Now     func() time.Time
}

// Name implements Job.
func (j *LowStockJob) Name() string { return "low-stock" }

// Run implements cron.Job.
func (j *LowStockJob) Run() {
	stamp := fmt.Sprintf("[%s]", now(j.Now).Format(lowStockTimestamp))

	result, err := j.API.RestockLowStock()
	if err != nil {
		record(j.Name(), j.LogPath, fmt.Sprintf("%s Error: %v", stamp, err))
		return
	}

	lines := make([]string, 0, len(result.UpdatedProducts)+1)
	lines = append(lines, fmt.Sprintf("%s %s", stamp, result.Message))
	for _, p := range result.UpdatedProducts {
		lines = append(lines, fmt.Sprintf(" - %s: new stock = %d", p.Name, p.Stock))
	}
	record(j.Name(), j.LogPath, lines...)
}
