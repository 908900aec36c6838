// Package controller provides the HTTP request handlers of the melodix API.
package controller

import (
	"melodix/web/middleware"
	"melodix/web/policy"
	"melodix/web/service"
	"melodix/web/session"

	"github.com/gin-gonic/gin"
)

// UserController handles account registration, login and user administration.
type UserController struct {
	userService service.UserService
}

// NewUserController creates a new UserController and sets up its routes.
func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.POST("/users", a.register)
	g.POST("/login", a.login)

	users := g.Group("/users", middleware.TokenAuth())
	users.GET("", middleware.Require(policy.ManageUsers), a.getUsers)
	users.GET("/:id", a.getUser)
	users.PUT("/:id", a.updateUser)
	users.DELETE("/:id", middleware.Require(policy.ManageUsers), a.deleteUser)
}

type credentialsForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *UserController) register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, service.BindError(err))
		return
	}
	user, err := a.userService.Register(form.Email, form.Password)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, user)
}

func (a *UserController) login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, service.BindError(err))
		return
	}
	tok, err := a.userService.Login(form.Email, form.Password)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, tok)
}

func (a *UserController) getUsers(c *gin.Context) {
	users, err := a.userService.GetAll()
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, users)
}

func (a *UserController) getUser(c *gin.Context) {
	user, err := a.userService.Get(c.Param("id"))
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, user)
}

func (a *UserController) updateUser(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonError(c, service.BindError(err))
		return
	}
	user, err := a.userService.Update(session.GetIdentity(c), c.Param("id"), form.Email, form.Password)
	if err != nil {
		jsonError(c, err)
		return
	}
	jsonData(c, user)
}

func (a *UserController) deleteUser(c *gin.Context) {
	if err := a.userService.Delete(c.Param("id")); err != nil {
		jsonError(c, err)
		return
	}
	jsonMessage(c, "user deleted")
}
