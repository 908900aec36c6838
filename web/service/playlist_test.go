package service

import (
	"testing"

	"melodix/database"
	"melodix/database/model"
	"melodix/util/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlaylistRequiresName(t *testing.T) {
	var playlistService PlaylistService

	user := newTestUser(t)
	_, err := playlistService.Create(user.Id, "", "desc", "")
	assert.Equal(t, apperr.CodeValidation, err.(*apperr.Error).Code)

	_, err = playlistService.Create(user.Id, "   ", "desc", "")
	assert.Equal(t, apperr.CodeValidation, err.(*apperr.Error).Code)
}

func TestEditPlaylistOwnership(t *testing.T) {
	var playlistService PlaylistService

	owner := newTestUser(t)
	other := newTestUser(t)

	playlist, err := playlistService.Create(owner.Id, "Morning Mix", "old", "old.png")
	require.NoError(t, err)

	_, err = playlistService.Edit(identityOf(other), playlist.Id, "Stolen", "", "")
	assert.True(t, apperr.Is(err, apperr.ErrForbidden))

	_, err = playlistService.Edit(identityOf(owner), "no-such-playlist", "Name", "", "")
	assert.True(t, apperr.Is(err, apperr.ErrPlaylistNotFound))

	// Empty description and image overwrite; no partial-update semantics.
	updated, err := playlistService.Edit(identityOf(owner), playlist.Id, "Evening Mix", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Evening Mix", updated.Name)
	assert.Empty(t, updated.Description)
	assert.Empty(t, updated.ImageUrl)
}

func TestAddSongIdempotent(t *testing.T) {
	var playlistService PlaylistService

	owner := newTestUser(t)
	song := newTestSong(t, "Repeated Track")

	playlist, err := playlistService.Create(owner.Id, "Repeats", "", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = playlistService.AddSong(identityOf(owner), playlist.Id, song.Id)
		require.NoError(t, err)
	}

	result, err := playlistService.GetWithSongs(playlist.Id)
	require.NoError(t, err)
	require.Len(t, result.Songs, 1)
	assert.Equal(t, song.Id, result.Songs[0].Id)
}

func TestAddSongChecks(t *testing.T) {
	var playlistService PlaylistService

	owner := newTestUser(t)
	other := newTestUser(t)
	song := newTestSong(t, "Guarded Track")

	playlist, err := playlistService.Create(owner.Id, "Guarded", "", "")
	require.NoError(t, err)

	_, err = playlistService.AddSong(identityOf(other), playlist.Id, song.Id)
	assert.True(t, apperr.Is(err, apperr.ErrForbidden))

	_, err = playlistService.AddSong(identityOf(owner), "no-such-playlist", song.Id)
	assert.True(t, apperr.Is(err, apperr.ErrPlaylistUnknown))

	_, err = playlistService.AddSong(identityOf(owner), playlist.Id, "no-such-song")
	assert.True(t, apperr.Is(err, apperr.ErrSongUnknown))
}

func TestRemoveSongAbsentIsNoop(t *testing.T) {
	var playlistService PlaylistService

	owner := newTestUser(t)
	song := newTestSong(t, "Resident Track")

	playlist, err := playlistService.Create(owner.Id, "Removals", "", "")
	require.NoError(t, err)
	_, err = playlistService.AddSong(identityOf(owner), playlist.Id, song.Id)
	require.NoError(t, err)

	_, err = playlistService.RemoveSong(identityOf(owner), playlist.Id, "never-added")
	require.NoError(t, err)

	result, err := playlistService.GetWithSongs(playlist.Id)
	require.NoError(t, err)
	require.Len(t, result.Songs, 1)
	assert.Equal(t, song.Id, result.Songs[0].Id)
}

func TestRemoveSongKeepsOrder(t *testing.T) {
	var playlistService PlaylistService

	owner := newTestUser(t)
	first := newTestSong(t, "First Track")
	second := newTestSong(t, "Second Track")
	third := newTestSong(t, "Third Track")

	playlist, err := playlistService.Create(owner.Id, "Ordered", "", "")
	require.NoError(t, err)
	for _, song := range []*model.Song{first, second, third} {
		_, err = playlistService.AddSong(identityOf(owner), playlist.Id, song.Id)
		require.NoError(t, err)
	}

	_, err = playlistService.RemoveSong(identityOf(owner), playlist.Id, second.Id)
	require.NoError(t, err)

	result, err := playlistService.GetWithSongs(playlist.Id)
	require.NoError(t, err)
	require.Len(t, result.Songs, 2)
	assert.Equal(t, first.Id, result.Songs[0].Id)
	assert.Equal(t, third.Id, result.Songs[1].Id)

	// Positions stay dense after removal.
	var positions []int
	require.NoError(t, database.GetDB().Model(&model.PlaylistSong{}).
		Where("playlist_id = ?", playlist.Id).
		Order("position").Pluck("position", &positions).Error)
	assert.Equal(t, []int{0, 1}, positions)
}

func TestDeletePlaylist(t *testing.T) {
	var playlistService PlaylistService

	owner := newTestUser(t)
	other := newTestUser(t)
	song := newTestSong(t, "Doomed Track")

	playlist, err := playlistService.Create(owner.Id, "Doomed", "", "")
	require.NoError(t, err)
	_, err = playlistService.AddSong(identityOf(owner), playlist.Id, song.Id)
	require.NoError(t, err)

	err = playlistService.Delete(identityOf(other), playlist.Id)
	assert.True(t, apperr.Is(err, apperr.ErrForbidden))

	require.NoError(t, playlistService.Delete(identityOf(owner), playlist.Id))

	_, err = playlistService.GetWithSongs(playlist.Id)
	assert.True(t, apperr.Is(err, apperr.ErrPlaylistNotFound))

	favorites, err := playlistService.Favorites(owner.Id)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	var members int64
	require.NoError(t, database.GetDB().Model(&model.PlaylistSong{}).
		Where("playlist_id = ?", playlist.Id).Count(&members).Error)
	assert.EqualValues(t, 0, members)
}

func TestGetWithSongsSkipsDanglingIds(t *testing.T) {
	var playlistService PlaylistService
	var songService SongService

	owner := newTestUser(t)
	keep := newTestSong(t, "Surviving Track")
	gone := newTestSong(t, "Deleted Track")

	playlist, err := playlistService.Create(owner.Id, "Dangling", "", "")
	require.NoError(t, err)
	_, err = playlistService.AddSong(identityOf(owner), playlist.Id, keep.Id)
	require.NoError(t, err)
	_, err = playlistService.AddSong(identityOf(owner), playlist.Id, gone.Id)
	require.NoError(t, err)

	require.NoError(t, songService.Delete(gone.Id))

	result, err := playlistService.GetWithSongs(playlist.Id)
	require.NoError(t, err)
	require.Len(t, result.Songs, 1)
	assert.Equal(t, keep.Id, result.Songs[0].Id)

	// The dangling membership row is not pruned.
	var members int64
	require.NoError(t, database.GetDB().Model(&model.PlaylistSong{}).
		Where("playlist_id = ?", playlist.Id).Count(&members).Error)
	assert.EqualValues(t, 2, members)
}

func TestRandomPlaylists(t *testing.T) {
	var playlistService PlaylistService

	owner := newTestUser(t)
	for _, name := range []string{"Random A", "Random B", "Random C"} {
		_, err := playlistService.Create(owner.Id, name, "", "")
		require.NoError(t, err)
	}

	var total int64
	require.NoError(t, database.GetDB().Model(&model.Playlist{}).Count(&total).Error)

	playlists, err := playlistService.Random(10)
	require.NoError(t, err)

	expected := int(total)
	if expected > 10 {
		expected = 10
	}
	require.Len(t, playlists, expected)

	seen := make(map[string]bool)
	for _, p := range playlists {
		assert.False(t, seen[p.Id], "duplicate playlist %s in sample", p.Id)
		seen[p.Id] = true
	}
}

func TestAddSongUsesNextFreePosition(t *testing.T) {
	var playlistService PlaylistService

	owner := newTestUser(t)
	playlist, err := playlistService.Create(owner.Id, "Gap List", "", "")
	require.NoError(t, err)

	seeded := newTestSong(t, "Gap Seed")
	appended := newTestSong(t, "Gap Filler")

	// A membership row beyond the dense range must not collide with the
	// next append.
	require.NoError(t, database.GetDB().Create(&model.PlaylistSong{
		PlaylistId: playlist.Id,
		SongId:     seeded.Id,
		Position:   5,
	}).Error)

	_, err = playlistService.AddSong(identityOf(owner), playlist.Id, appended.Id)
	require.NoError(t, err)

	row := &model.PlaylistSong{}
	require.NoError(t, database.GetDB().
		Where("playlist_id = ? AND song_id = ?", playlist.Id, appended.Id).
		First(row).Error)
	assert.Equal(t, 6, row.Position)
}
