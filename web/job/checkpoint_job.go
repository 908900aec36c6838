package job

import (
	"melodix/database"
	"melodix/logger"
	"melodix/util/common"
)

// CheckpointJob flushes the sqlite write-ahead log into the main file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")

	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	}
}
