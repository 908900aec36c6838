// Package web provides the HTTP server for the melodix API, including
// routing, middleware and background job scheduling.
package web

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"melodix/config"
	"melodix/logger"
	"melodix/util/common"
	"melodix/web/controller"
	"melodix/web/job"
	"melodix/web/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server is the API server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	users     *controller.UserController
	songs     *controller.SongController
	playlists *controller.PlaylistController
	search    *controller.SearchController

	cron *cron.Cron
}

// NewServer creates a new web server instance.
func NewServer() *Server {
	return new(Server)
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	engine.Use(middleware.Cors())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	api := engine.Group("/api")
	s.users = controller.NewUserController(api)
	s.songs = controller.NewSongController(api)
	s.playlists = controller.NewPlaylistController(api)
	s.search = controller.NewSearchController(api)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return engine, nil
}

// startTask schedules the background maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewConsistencyCheckJob())
	s.cron.AddJob("@daily", job.NewCheckpointJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()
	s.startTask()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return common.NewErrorf("listen on %v failed: %v", addr, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler: engine,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve failed:", err)
		}
	}()

	logger.Infof("%v %v listening on %v", config.GetName(), config.GetVersion(), addr)
	return nil
}

// Stop shuts down the server, its scheduler and open connections.
func (s *Server) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	} else if s.listener != nil {
		err = s.listener.Close()
	}
	return err
}

// Addr returns the address the server is listening on, for logging and tests.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return fmt.Sprint(s.listener.Addr())
}
