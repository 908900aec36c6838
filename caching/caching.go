// Package caching holds the in-memory cache for the public song catalog.
package caching

import (
	"time"

	"melodix/database/model"

	"github.com/patrickmn/go-cache"
)

const songListKey = "songs:all"

type CatalogCache struct {
	memoryCache *cache.Cache
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		memoryCache: cache.New(ttl, 2*ttl),
	}
}

func (s *CatalogCache) GetSongs() ([]model.Song, bool) {
	v, ok := s.memoryCache.Get(songListKey)
	if !ok {
		return nil, false
	}
	songs, ok := v.([]model.Song)
	return songs, ok
}

func (s *CatalogCache) SetSongs(songs []model.Song) {
	s.memoryCache.Set(songListKey, songs, cache.DefaultExpiration)
}

// InvalidateSongs drops the cached listing after a catalog mutation.
func (s *CatalogCache) InvalidateSongs() {
	s.memoryCache.Delete(songListKey)
}

func (s *CatalogCache) Flush() {
	s.memoryCache.Flush()
}

// Catalog is the process-wide catalog cache.
var Catalog = NewCatalogCache(30 * time.Second)
