package controller

import (
	"melodix/web/middleware"
	"melodix/web/service"
	"melodix/web/session"

	"github.com/gin-gonic/gin"
)

// PlaylistController handles playlist CRUD and song membership changes.
type PlaylistController struct {
	playlistService service.PlaylistService
}

// NewPlaylistController creates a new PlaylistController and sets up its routes.
func NewPlaylistController(g *gin.RouterGroup) *PlaylistController {
	a := &PlaylistController{}
	a.initRouter(g)
	return a
}

func (a *PlaylistController) initRouter(g *gin.RouterGroup) {
	pl := g.Group("/playlists", middleware.TokenAuth())

	pl.POST("", a.createPlaylist)
	pl.GET("", a.getPlaylists)
	pl.GET("/favourite", a.favouritePlaylists)
	pl.GET("/random", a.randomPlaylists)
	pl.GET("/:id", a.getPlaylist)
	pl.PUT("/edit/:id", a.editPlaylist)
	pl.PUT("/add-song", a.addSong)
	pl.PUT("/remove-song", a.removeSong)
	pl.DELETE("/:id", a.deletePlaylist)
}

type playlistForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageUrl    string `json:"imageUrl"`
}

type membershipForm struct {
	PlayListId string `json:"playListId"`
	SongId     string `json:"songId"`
}

func (a *PlaylistController) createPlaylist(c *gin.Context) {
	var form playlistForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, service.BindError(err))
		return
	}
	id := session.GetIdentity(c)
	playlist, err := a.playlistService.Create(id.UserId, form.Name, form.Description, form.ImageUrl)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, playlist)
}

func (a *PlaylistController) getPlaylists(c *gin.Context) {
	playlists, err := a.playlistService.GetAll()
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, playlists)
}

func (a *PlaylistController) favouritePlaylists(c *gin.Context) {
	id := session.GetIdentity(c)
	playlists, err := a.playlistService.Favorites(id.UserId)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, playlists)
}

func (a *PlaylistController) randomPlaylists(c *gin.Context) {
	playlists, err := a.playlistService.Random(10)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, playlists)
}

func (a *PlaylistController) getPlaylist(c *gin.Context) {
	result, err := a.playlistService.GetWithSongs(c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, result)
}

func (a *PlaylistController) editPlaylist(c *gin.Context) {
	var form playlistForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, service.BindError(err))
		return
	}
	id := session.GetIdentity(c)
	playlist, err := a.playlistService.Edit(id, c.Param("id"), form.Name, form.Description, form.ImageUrl)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, playlist)
}

func (a *PlaylistController) addSong(c *gin.Context) {
	var form membershipForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, service.BindError(err))
		return
	}
	id := session.GetIdentity(c)
	playlist, err := a.playlistService.AddSong(id, form.PlayListId, form.SongId)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, playlist)
}

func (a *PlaylistController) removeSong(c *gin.Context) {
	var form membershipForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, service.BindError(err))
		return
	}
	id := session.GetIdentity(c)
	playlist, err := a.playlistService.RemoveSong(id, form.PlayListId, form.SongId)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, playlist)
}

func (a *PlaylistController) deletePlaylist(c *gin.Context) {
	id := session.GetIdentity(c)
	if err := a.playlistService.Delete(id, c.Param("id")); err != nil {
		jsonError(c, err)
		return
	}
	jsonMessage(c, "playlist deleted")
}
