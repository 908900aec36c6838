package service

import (
	"testing"

	"melodix/database"
	"melodix/database/model"
	"melodix/util/apperr"
	"melodix/util/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicateEmail(t *testing.T) {
	var userService UserService

	user, err := userService.Register("dup@example.com", "secret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, user.Id)
	assert.Equal(t, model.RoleRegular, user.Role)

	_, err = userService.Register("dup@example.com", "other-pass")
	assert.True(t, apperr.Is(err, apperr.ErrEmailTaken))

	// Case-insensitive match, and no second record was created.
	_, err = userService.Register("DUP@example.com", "other-pass")
	assert.True(t, apperr.Is(err, apperr.ErrEmailTaken))

	var count int64
	require.NoError(t, database.GetDB().Model(&model.User{}).Where("email = ?", "dup@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterValidation(t *testing.T) {
	var userService UserService

	_, err := userService.Register("", "secret-pass")
	assert.Equal(t, apperr.CodeValidation, err.(*apperr.Error).Code)

	_, err = userService.Register("not-an-email", "secret-pass")
	assert.Equal(t, apperr.CodeValidation, err.(*apperr.Error).Code)

	_, err = userService.Register("short@example.com", "abc")
	assert.Equal(t, apperr.CodeValidation, err.(*apperr.Error).Code)
}

func TestLogin(t *testing.T) {
	var userService UserService

	user, err := userService.Register("login@example.com", "secret-pass")
	require.NoError(t, err)

	_, err = userService.Login("login@example.com", "wrong-pass")
	assert.True(t, apperr.Is(err, apperr.ErrInvalidCredentials))

	_, err = userService.Login("nobody@example.com", "secret-pass")
	assert.True(t, apperr.Is(err, apperr.ErrInvalidCredentials))

	tok, err := userService.Login("login@example.com", "secret-pass")
	require.NoError(t, err)

	claims, err := token.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, user.Id, claims.UserId)
	assert.Equal(t, model.RoleRegular, claims.Role)
}

func TestUpdateUserOwnership(t *testing.T) {
	var userService UserService

	target := newTestUser(t)
	other := newTestUser(t)

	_, err := userService.Update(identityOf(other), target.Id, "hacked@example.com", "")
	assert.True(t, apperr.Is(err, apperr.ErrForbidden))

	updated, err := userService.Update(identityOf(target), target.Id, "renamed@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", updated.Email)
}

func TestDeleteUserCascades(t *testing.T) {
	var userService UserService
	var playlistService PlaylistService
	var songService SongService

	user := newTestUser(t)
	song := newTestSong(t, "Cascade Test Track")

	playlist, err := playlistService.Create(user.Id, "Cascade Mix", "", "")
	require.NoError(t, err)
	_, err = playlistService.AddSong(identityOf(user), playlist.Id, song.Id)
	require.NoError(t, err)
	_, err = songService.ToggleLike(user.Id, song.Id)
	require.NoError(t, err)

	require.NoError(t, userService.Delete(user.Id))

	_, err = userService.Get(user.Id)
	assert.True(t, apperr.Is(err, apperr.ErrUserNotFound))

	_, err = playlistService.GetWithSongs(playlist.Id)
	assert.True(t, apperr.Is(err, apperr.ErrPlaylistNotFound))

	var likes int64
	require.NoError(t, database.GetDB().Model(&model.LikedSong{}).Where("user_id = ?", user.Id).Count(&likes).Error)
	assert.EqualValues(t, 0, likes)
}
