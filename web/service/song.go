package service

import (
	"strings"

	"melodix/caching"
	"melodix/database"
	"melodix/database/model"
	"melodix/util/apperr"

	"github.com/google/uuid"
)

// SongService manages the catalog and the per-user liked-songs set.
type SongService struct{}

// GetAll returns the full catalog, served from a short-lived cache.
func (s *SongService) GetAll() ([]model.Song, error) {
	if songs, ok := caching.Catalog.GetSongs(); ok {
		return songs, nil
	}

	db := database.GetDB()

	var songs []model.Song
	if err := db.Order("created_at").Find(&songs).Error; err != nil {
		return nil, err
	}
	caching.Catalog.SetSongs(songs)
	return songs, nil
}

func validateSong(song *model.Song) error {
	if strings.TrimSpace(song.Title) == "" {
		return apperr.Validation("title is required")
	}
	if strings.TrimSpace(song.Artist) == "" {
		return apperr.Validation("artist is required")
	}
	if song.DurationSeconds <= 0 {
		return apperr.Validation("durationSeconds must be positive")
	}
	return nil
}

func (s *SongService) Create(song *model.Song) error {
	if err := validateSong(song); err != nil {
		return err
	}
	song.Id = uuid.NewString()

	db := database.GetDB()
	if err := db.Create(song).Error; err != nil {
		return err
	}
	caching.Catalog.InvalidateSongs()
	return nil
}

func (s *SongService) Get(id string) (*model.Song, error) {
	db := database.GetDB()

	song := &model.Song{}
	err := db.Where("id = ?", id).First(song).Error
	if database.IsNotFound(err) {
		return nil, apperr.ErrSongNotFound
	} else if err != nil {
		return nil, err
	}
	return song, nil
}

func (s *SongService) Update(id string, form *model.Song) (*model.Song, error) {
	song, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validateSong(form); err != nil {
		return nil, err
	}

	song.Title = form.Title
	song.Artist = form.Artist
	song.DurationSeconds = form.DurationSeconds
	song.Album = form.Album
	song.CoverUrl = form.CoverUrl

	db := database.GetDB()
	if err := db.Save(song).Error; err != nil {
		return nil, err
	}
	caching.Catalog.InvalidateSongs()
	return song, nil
}

// Delete removes a song from the catalog. Like rows and playlist membership
// rows referencing it are left in place; reads filter them out and the
// consistency job reports them.
func (s *SongService) Delete(id string) error {
	song, err := s.Get(id)
	if err != nil {
		return err
	}

	db := database.GetDB()
	if err := db.Delete(song).Error; err != nil {
		return err
	}
	caching.Catalog.InvalidateSongs()
	return nil
}

// ToggleLike flips songId's membership in the user's liked-songs set and
// reports the branch taken: true when the song was added. The delete/insert
// pair plus the unique index keeps concurrent toggles from double-adding.
func (s *SongService) ToggleLike(userId, songId string) (bool, error) {
	db := database.GetDB()

	var count int64
	if err := db.Model(&model.Song{}).Where("id = ?", songId).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, apperr.ErrSongUnknown
	}

	res := db.Where("user_id = ? AND song_id = ?", userId, songId).Delete(&model.LikedSong{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := &model.LikedSong{UserId: userId, SongId: songId}
	if err := db.Create(like).Error; err != nil {
		if isUniqueViolation(err) {
			// A concurrent request won the insert; the set already holds the song.
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// LikedSongs returns the user's liked songs in catalog order. Likes pointing
// at deleted songs drop out of the join silently.
func (s *SongService) LikedSongs(userId string) ([]model.Song, error) {
	db := database.GetDB()

	var songs []model.Song
	err := db.Model(&model.Song{}).
		Joins("JOIN liked_songs ON liked_songs.song_id = songs.id").
		Where("liked_songs.user_id = ?", userId).
		Order("songs.created_at").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	return songs, nil
}
