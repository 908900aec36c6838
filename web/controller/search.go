package controller

import (
	"melodix/web/middleware"
	"melodix/web/service"

	"github.com/gin-gonic/gin"
)

// SearchController handles the catalog/playlist search endpoint.
type SearchController struct {
	searchService service.SearchService
}

// NewSearchController creates a new SearchController and sets up its routes.
func NewSearchController(g *gin.RouterGroup) *SearchController {
	a := &SearchController{}
	a.initRouter(g)
	return a
}

func (a *SearchController) initRouter(g *gin.RouterGroup) {
	g.GET("/search", middleware.TokenAuth(), a.search)
}

func (a *SearchController) search(c *gin.Context) {
	result, err := a.searchService.Search(c.Query("search"))
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, result)
}
