package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
)

type AnnualCmd struct {
	Year    string `arg:"" help:"Year to aggregate (YYYY)."`
	Refresh bool   `short:"r" help:"Ignore cached data."`
}

func (c *AnnualCmd) Run(ctx *cmdContext) error {
	stats, err := ctx.ws.Charts().Annual(context.Background(), c.Year, c.Refresh)
	if err != nil {
		return err
	}

	fmt.Printf("%v: %v weeks\n", stats.Year, humanize.Comma(int64(len(stats.Weeks))))
	fmt.Println()

	for _, m := range stats.Months {
		fmt.Printf("   %v: %v PRs merged, %v reviews, %v issues completed, %v commits\n",
			m.Label,
			humanize.Comma(int64(m.PRsMerged)),
			humanize.Comma(int64(m.PRReviews)),
			humanize.Comma(int64(m.LinearCompleted)),
			humanize.Comma(int64(m.CommitsPushed)))
	}

	fmt.Println()
	fmt.Printf("   Total: %v PRs merged, %v reviews, %v issues completed, %v commits\n",
		humanize.Comma(int64(stats.TotalPRsMerged)),
		humanize.Comma(int64(stats.TotalPRReviews)),
		humanize.Comma(int64(stats.TotalLinearCompleted)),
		humanize.Comma(int64(stats.TotalCommitsPushed)))

	if len(stats.TopRepos) > 0 {
		fmt.Println()
		fmt.Println("   Top repos:")
		for _, r := range stats.TopRepos {
			fmt.Printf("      %v [%v PRs]\n", r.Repo, humanize.Comma(int64(r.PRs)))
		}
	}

	if len(stats.TopProjects) > 0 {
		fmt.Println()
		fmt.Println("   Top projects:")
		for _, p := range stats.TopProjects {
			fmt.Printf("      %v [%v issues]\n", p.Project, humanize.Comma(int64(p.Issues)))
		}
	}

	return nil
}
