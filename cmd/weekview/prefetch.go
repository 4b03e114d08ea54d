package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/nlewis84/weekly-summary/lib/utils"
)

type PrefetchCmd struct {
	Refresh bool `short:"r" help:"Refetch weeks that are already cached."`
}

func (c *PrefetchCmd) Run(ctx *cmdContext) error {
	weeks, err := ctx.ws.Store().ListWeeks(context.Background(), c.Refresh)
	if err != nil {
		return err
	}

	ctx.ws.Console().Printf("Fetching %v weeks...\n", humanize.Comma(int64(len(weeks))))

	var missing int
	bar := utils.NewProgressBar(len(weeks))
	for _, week := range weeks {
		summary, err := ctx.ws.Store().FetchWeek(context.Background(), week, c.Refresh)
		if err != nil {
			return err
		}
		if summary == nil {
			missing++
		}

		_ = bar.Add(1)
	}
	_ = bar.Clear()

	if missing > 0 {
		fmt.Printf("%v weeks had no usable summary\n", humanize.Comma(int64(missing)))
	}

	return nil
}
