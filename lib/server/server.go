package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/nlewis84/weekly-summary/lib/charts"
	"github.com/nlewis84/weekly-summary/lib/consoles"
	"github.com/nlewis84/weekly-summary/lib/github"
)

type Options struct {
	Port uint
}

func Run(console consoles.Console, store *github.Store, charts *charts.Charts, opts *Options) error {
	s := newServer(store, charts, opts)

	console.Printf("Starting server on port %v...\n", s.opts.Port)

	return s.run()
}

type server struct {
	opts *Options

	store  *github.Store
	charts *charts.Charts
}

func newServer(store *github.Store, charts *charts.Charts, opts *Options) *server {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Port == 0 {
		opts.Port = 2427
	}

	return &server{
		opts:   opts,
		store:  store,
		charts: charts,
	}
}

func (s *server) run() error {
	r := s.createRouter()
	return r.Run(fmt.Sprintf(":%v", s.opts.Port))
}

func (s *server) createRouter() *gin.Engine {
	r := gin.Default()

	s.initHistory(r)
	s.initCharts(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
