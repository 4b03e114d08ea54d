package main

import (
	"context"
	"fmt"
)

type WeeksCmd struct {
	Refresh bool `short:"r" help:"Ignore cached data."`
}

func (c *WeeksCmd) Run(ctx *cmdContext) error {
	weeks, err := ctx.ws.Store().ListWeeks(context.Background(), c.Refresh)
	if err != nil {
		return err
	}

	for _, week := range weeks {
		fmt.Println(week)
	}

	return nil
}
