package service

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"melodix/database"
	"melodix/database/model"
	"melodix/logger"
	"melodix/util/token"
	"melodix/web/policy"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "melodix-test-*")
	if err != nil {
		panic(err)
	}
	os.Setenv("MELODIX_LOG_FOLDER", dir)

	logger.InitLogger(logging.ERROR)
	token.Init("test-secret", time.Hour)

	if err := database.InitDB(filepath.Join(dir, "test.db")); err != nil {
		panic(err)
	}

	code := m.Run()

	_ = database.CloseDB()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

var userSeq int

// newTestUser registers a fresh regular account with a unique email.
func newTestUser(t *testing.T) *model.User {
	t.Helper()
	userSeq++
	var userService UserService
	user, err := userService.Register(fmt.Sprintf("user%d@example.com", userSeq), "secret-pass")
	require.NoError(t, err)
	return user
}

func identityOf(user *model.User) policy.Identity {
	return policy.Identity{UserId: user.Id, Role: user.Role}
}

// newTestSong inserts a catalog entry with the given title.
func newTestSong(t *testing.T, title string) *model.Song {
	t.Helper()
	var songService SongService
	song := &model.Song{Title: title, Artist: "Test Artist", DurationSeconds: 180}
	require.NoError(t, songService.Create(song))
	return song
}
