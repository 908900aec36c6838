package model

import "time"

type UserRole string

const (
	RoleRegular UserRole = "regular"
	RoleAdmin   UserRole = "admin"
)

// User is an account identity. Liked songs and owned playlists are kept in
// separate rows so membership updates are single atomic statements.
type User struct {
	Id        string    `json:"id" gorm:"primaryKey;size:36"`
	Email     string    `json:"email" form:"email" gorm:"uniqueIndex;size:255"`
	Password  string    `json:"-" form:"password"`
	Role      UserRole  `json:"role" gorm:"size:16;default:regular"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Song is a catalog entry. Mutated only by admins.
type Song struct {
	Id              string    `json:"id" gorm:"primaryKey;size:36"`
	Title           string    `json:"title" form:"title"`
	Artist          string    `json:"artist" form:"artist"`
	DurationSeconds int       `json:"durationSeconds" form:"durationSeconds"`
	Album           string    `json:"album,omitempty" form:"album"`
	CoverUrl        string    `json:"coverUrl,omitempty" form:"coverUrl"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Playlist is owned by exactly one user; OwnerId is immutable after creation.
type Playlist struct {
	Id          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" form:"name"`
	Description string    `json:"description" form:"description"`
	ImageUrl    string    `json:"imageUrl" form:"imageUrl"`
	OwnerId     string    `json:"ownerId" gorm:"index;size:36"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LikedSong is one element of a user's liked-songs set. The composite unique
// index makes "add if absent" a single statement instead of read-modify-write.
type LikedSong struct {
	Id     int    `json:"-" gorm:"primaryKey;autoIncrement"`
	UserId string `json:"userId" gorm:"uniqueIndex:idx_user_song;size:36"`
	SongId string `json:"songId" gorm:"uniqueIndex:idx_user_song;size:36"`
}

// PlaylistSong is one element of a playlist's ordered song list. Position is
// dense per playlist; the unique index rejects duplicate membership.
type PlaylistSong struct {
	Id         int    `json:"-" gorm:"primaryKey;autoIncrement"`
	PlaylistId string `json:"playlistId" gorm:"uniqueIndex:idx_playlist_song;size:36"`
	SongId     string `json:"songId" gorm:"uniqueIndex:idx_playlist_song;size:36"`
	Position   int    `json:"position"`
}
