package job

import (
	"melodix/database"
	"melodix/logger"
	"melodix/util/common"
)

// ConsistencyCheckJob reports dangling references left behind by catalog
// deletions. It only counts and logs; reads already filter dangling ids and
// nothing is pruned.
type ConsistencyCheckJob struct{}

func NewConsistencyCheckJob() *ConsistencyCheckJob {
	return new(ConsistencyCheckJob)
}

func (j *ConsistencyCheckJob) Run() {
	defer common.Recover("consistency check job")

	db := database.GetDB()

	var danglingLikes int64
	err := db.Raw(`SELECT COUNT(*) FROM liked_songs ls
		LEFT JOIN songs s ON s.id = ls.song_id
		WHERE s.id IS NULL`).Scan(&danglingLikes).Error
	if err != nil {
		logger.Warning("consistency check on liked songs failed:", err)
		return
	}

	var danglingMembers int64
	err = db.Raw(`SELECT COUNT(*) FROM playlist_songs ps
		LEFT JOIN songs s ON s.id = ps.song_id
		WHERE s.id IS NULL`).Scan(&danglingMembers).Error
	if err != nil {
		logger.Warning("consistency check on playlist songs failed:", err)
		return
	}

	if danglingLikes > 0 || danglingMembers > 0 {
		logger.Warningf("dangling references: %v liked songs, %v playlist members", danglingLikes, danglingMembers)
	} else {
		logger.Debug("consistency check found no dangling references")
	}
}
