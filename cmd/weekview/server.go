package main

import (
	"github.com/nlewis84/weekly-summary/lib/server"
)

type ServerCmd struct {
	Port uint `default:"2427" help:"Port to listen to."`
}

func (c *ServerCmd) Run(ctx *cmdContext) error {
	return server.Run(ctx.ws.Console(), ctx.ws.Store(), ctx.ws.Charts(), &server.Options{
		Port: c.Port,
	})
}
