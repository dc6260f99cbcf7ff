// Package server exposes the player over HTTP so that a host CMS (or any
// page builder) can request embeds without linking the library.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"ouiplayer/internal/player"
	"ouiplayer/internal/provider"
)

// Server serves embed and match requests.
type Server struct {
	player *player.Player
	reg    *provider.Registry
	logger hclog.Logger
}

// New creates a Server. A nil logger disables request logging.
func New(p *player.Player, reg *provider.Registry, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Server{player: p, reg: reg, logger: logger}
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/embed", s.embedHandler)
	r.GET("/match", s.matchHandler)
	r.GET("/providers", s.providersHandler)
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// GET /embed?play=...&provider=...&width=...
func (s *Server) embedHandler(c *gin.Context) {
	out, err := s.player.Embed(player.Request{Atts: attributes(c)})
	if err != nil {
		s.abort(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

// GET /match?play=...
func (s *Server) matchHandler(c *gin.Context) {
	m, ok, err := s.player.Match(player.Request{Atts: attributes(c)})
	if err != nil {
		s.abort(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no provider matches"})
		return
	}
	c.JSON(http.StatusOK, m)
}

type providerInfo struct {
	Name   string              `json:"name"`
	Src    string              `json:"src"`
	Params []provider.ParamDef `json:"params"`
}

// GET /providers
func (s *Server) providersHandler(c *gin.Context) {
	var out []providerInfo
	for _, p := range s.reg.Providers() {
		ep := p.Params()
		out = append(out, providerInfo{Name: p.Name(), Src: ep.Src, Params: ep.Params})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, provider.ErrUnknownProvider),
		errors.Is(err, player.ErrNothingToPlay),
		errors.Is(err, player.ErrInvalidTag):
		status = http.StatusBadRequest
	case errors.Is(err, provider.ErrInvalidParam):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// attributes flattens the query string; repeated keys keep the first value.
func attributes(c *gin.Context) map[string]string {
	atts := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			atts[k] = v[0]
		}
	}
	return atts
}
