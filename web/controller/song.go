package controller

import (
	"melodix/database/model"
	"melodix/web/middleware"
	"melodix/web/policy"
	"melodix/web/service"
	"melodix/web/session"

	"github.com/gin-gonic/gin"
)

// SongController handles the public catalog, admin catalog mutations and likes.
type SongController struct {
	songService service.SongService
}

// NewSongController creates a new SongController and sets up its routes.
func NewSongController(g *gin.RouterGroup) *SongController {
	a := &SongController{}
	a.initRouter(g)
	return a
}

func (a *SongController) initRouter(g *gin.RouterGroup) {
	songs := g.Group("/songs")
	songs.GET("", a.getSongs)

	auth := songs.Group("", middleware.TokenAuth())
	auth.GET("/like", a.likedSongs)
	auth.PUT("/like/:id", a.toggleLike)

	admin := songs.Group("", middleware.TokenAuth(), middleware.Require(policy.ManageCatalog))
	admin.POST("", a.addSong)
	admin.PUT("/:id", a.updateSong)
	admin.DELETE("/:id", a.deleteSong)
}

func (a *SongController) getSongs(c *gin.Context) {
	songs, err := a.songService.GetAll()
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, songs)
}

func (a *SongController) addSong(c *gin.Context) {
	song := &model.Song{}
	if err := c.ShouldBindJSON(song); err != nil {
		jsonError(c, service.BindError(err))
		return
	}
	if err := a.songService.Create(song); err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, song)
}

func (a *SongController) updateSong(c *gin.Context) {
	form := &model.Song{}
	if err := c.ShouldBindJSON(form); err != nil {
		jsonError(c, service.BindError(err))
		return
	}
	song, err := a.songService.Update(c.Param("id"), form)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, song)
}

func (a *SongController) deleteSong(c *gin.Context) {
	if err := a.songService.Delete(c.Param("id")); err != nil {
		jsonError(c, err)
		return
	}
	jsonMessage(c, "song deleted")
}

func (a *SongController) toggleLike(c *gin.Context) {
	id := session.GetIdentity(c)
	liked, err := a.songService.ToggleLike(id.UserId, c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	if liked {
		jsonMessage(c, "added to your liked songs")
	} else {
		jsonMessage(c, "removed from your liked songs")
	}
}

func (a *SongController) likedSongs(c *gin.Context) {
	id := session.GetIdentity(c)
	songs, err := a.songService.LikedSongs(id.UserId)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, songs)
}
