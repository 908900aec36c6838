package service

import (
	"strings"

	"melodix/database"
	"melodix/database/model"
	"melodix/util/apperr"
	"melodix/web/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistService coordinates playlists, their song membership and ownership
// checks. Ownership is re-validated on every call, never cached.
type PlaylistService struct{}

// PlaylistWithSongs is a playlist with its song ids resolved to full records.
type PlaylistWithSongs struct {
	Playlist model.Playlist `json:"playlist"`
	Songs    []model.Song   `json:"songs"`
}

func (s *PlaylistService) Create(ownerId, name, description, imageUrl string) (*model.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name is required")
	}

	playlist := &model.Playlist{
		Id:          uuid.NewString(),
		Name:        name,
		Description: description,
		ImageUrl:    imageUrl,
		OwnerId:     ownerId,
	}

	db := database.GetDB()
	if err := db.Create(playlist).Error; err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) GetAll() ([]model.Playlist, error) {
	db := database.GetDB()

	var playlists []model.Playlist
	if err := db.Order("created_at").Find(&playlists).Error; err != nil {
		return nil, err
	}
	return playlists, nil
}

func (s *PlaylistService) get(id string, notFound error) (*model.Playlist, error) {
	db := database.GetDB()

	playlist := &model.Playlist{}
	err := db.Where("id = ?", id).First(playlist).Error
	if database.IsNotFound(err) {
		return nil, notFound
	} else if err != nil {
		return nil, err
	}
	return playlist, nil
}

// Edit overwrites the playlist metadata. Description and image are replaced
// even when empty; there are no partial-update semantics.
func (s *PlaylistService) Edit(actor policy.Identity, id, name, description, imageUrl string) (*model.Playlist, error) {
	playlist, err := s.get(id, apperr.ErrPlaylistNotFound)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(actor, policy.MutatePlaylist, playlist); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name is required")
	}

	playlist.Name = name
	playlist.Description = description
	playlist.ImageUrl = imageUrl

	db := database.GetDB()
	if err := db.Save(playlist).Error; err != nil {
		return nil, err
	}
	return playlist, nil
}

// AddSong appends the song to the playlist unless it is already a member.
// Adding a present song is a reported success with no state change; the
// composite unique index makes the append atomic under concurrency.
func (s *PlaylistService) AddSong(actor policy.Identity, playlistId, songId string) (*model.Playlist, error) {
	playlist, err := s.get(playlistId, apperr.ErrPlaylistUnknown)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(actor, policy.MutatePlaylist, playlist); err != nil {
		return nil, err
	}

	db := database.GetDB()

	var count int64
	if err := db.Model(&model.Song{}).Where("id = ?", songId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.ErrSongUnknown
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// MAX keeps concurrent appends of different songs from sharing a position.
		var position int64
		err := tx.Model(&model.PlaylistSong{}).
			Where("playlist_id = ?", playlistId).
			Select("COALESCE(MAX(position) + 1, 0)").
			Scan(&position).Error
		if err != nil {
			return err
		}
		row := &model.PlaylistSong{
			PlaylistId: playlistId,
			SongId:     songId,
			Position:   int(position),
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

// RemoveSong removes the song from the playlist and keeps positions dense.
// Removing an absent song is a reported success with no state change.
func (s *PlaylistService) RemoveSong(actor policy.Identity, playlistId, songId string) (*model.Playlist, error) {
	playlist, err := s.get(playlistId, apperr.ErrPlaylistUnknown)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(actor, policy.MutatePlaylist, playlist); err != nil {
		return nil, err
	}

	db := database.GetDB()

	err = db.Transaction(func(tx *gorm.DB) error {
		row := &model.PlaylistSong{}
		err := tx.Where("playlist_id = ? AND song_id = ?", playlistId, songId).First(row).Error
		if database.IsNotFound(err) {
			return nil
		} else if err != nil {
			return err
		}
		if err := tx.Delete(row).Error; err != nil {
			return err
		}
		return tx.Model(&model.PlaylistSong{}).
			Where("playlist_id = ? AND position > ?", playlistId, row.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

// Delete removes the playlist and its membership rows in one transaction, so
// the owner's playlist list and the playlist record cannot diverge.
func (s *PlaylistService) Delete(actor policy.Identity, id string) error {
	playlist, err := s.get(id, apperr.ErrPlaylistUnknown)
	if err != nil {
		return err
	}
	if err := policy.Allow(actor, policy.MutatePlaylist, playlist); err != nil {
		return err
	}

	db := database.GetDB()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistSong{}).Error; err != nil {
			return err
		}
		return tx.Delete(playlist).Error
	})
}

// Favorites returns the playlists owned by the user in creation order.
func (s *PlaylistService) Favorites(userId string) ([]model.Playlist, error) {
	db := database.GetDB()

	var playlists []model.Playlist
	if err := db.Where("owner_id = ?", userId).Order("created_at").Find(&playlists).Error; err != nil {
		return nil, err
	}
	return playlists, nil
}

// Random returns up to n playlists sampled uniformly without replacement.
func (s *PlaylistService) Random(n int) ([]model.Playlist, error) {
	db := database.GetDB()

	var playlists []model.Playlist
	if err := db.Order("RANDOM()").Limit(n).Find(&playlists).Error; err != nil {
		return nil, err
	}
	return playlists, nil
}

// GetWithSongs resolves the playlist's song list in position order. Ids that
// no longer resolve are absent from the result and are not pruned.
func (s *PlaylistService) GetWithSongs(id string) (*PlaylistWithSongs, error) {
	playlist, err := s.get(id, apperr.ErrPlaylistNotFound)
	if err != nil {
		return nil, err
	}

	db := database.GetDB()

	songs := make([]model.Song, 0)
	err = db.Model(&model.Song{}).
		Joins("JOIN playlist_songs ON playlist_songs.song_id = songs.id").
		Where("playlist_songs.playlist_id = ?", id).
		Order("playlist_songs.position").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}

	return &PlaylistWithSongs{Playlist: *playlist, Songs: songs}, nil
}
