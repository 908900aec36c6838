package service

import (
	"strings"

	"melodix/database"
	"melodix/database/model"
)

const searchLimit = 10

// likeEscaper neutralizes LIKE metacharacters so they match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchService runs substring queries across the catalog and playlist stores.
type SearchService struct{}

// SearchResult holds the two independent result lists.
type SearchResult struct {
	Songs     []model.Song     `json:"songs"`
	Playlists []model.Playlist `json:"playlists"`
}

// Search matches the query case-insensitively against song titles and
// playlist names, each list capped at 10. An empty query yields an empty
// result object, not the full stores.
func (s *SearchService) Search(query string) (*SearchResult, error) {
	result := &SearchResult{
		Songs:     make([]model.Song, 0),
		Playlists: make([]model.Playlist, 0),
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return result, nil
	}

	db := database.GetDB()
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	err := db.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern).
		Limit(searchLimit).
		Find(&result.Songs).Error
	if err != nil {
		return nil, err
	}

	err = db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Limit(searchLimit).
		Find(&result.Playlists).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
