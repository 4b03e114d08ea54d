package main

import (
	"context"
	"fmt"
)

type YearsCmd struct {
	Refresh bool `short:"r" help:"Ignore cached data."`
}

func (c *YearsCmd) Run(ctx *cmdContext) error {
	years, err := ctx.ws.Charts().Years(context.Background(), c.Refresh)
	if err != nil {
		return err
	}

	for _, year := range years {
		fmt.Println(year)
	}

	return nil
}
