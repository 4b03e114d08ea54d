package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/nlewis84/weekly-summary/lib/github"
	"github.com/nlewis84/weekly-summary/lib/markdown"
)

type ShowCmd struct {
	Week    string `arg:"" help:"Week ending date (YYYY-MM-DD)."`
	Refresh bool   `short:"r" help:"Ignore cached data."`
}

func (c *ShowCmd) Run(ctx *cmdContext) error {
	if !github.IsWeekKey(c.Week) {
		return errors.Errorf("invalid week format (expected YYYY-MM-DD): %v", c.Week)
	}

	summary, err := ctx.ws.Store().FetchWeek(context.Background(), c.Week, c.Refresh)
	if err != nil {
		return err
	}
	if summary == nil {
		return errors.Errorf("no summary for week %v", c.Week)
	}

	fmt.Print(markdown.Render(summary))

	return nil
}
