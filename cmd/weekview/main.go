package main

import (
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/nlewis84/weekly-summary/lib/workspace"
)

var cli struct {
	Repo     string        `help:"GitHub repository holding the summaries, as owner/name." env:"GITHUB_REPO" default:"nlewis84/weekly-summary"`
	Token    string        `help:"GitHub API token." env:"GITHUB_TOKEN"`
	Dirs     string        `help:"Comma separated list of repository directories to scan." env:"GITHUB_SUMMARY_PATHS" default:"2026-weekly-work-summaries"`
	CacheTTL time.Duration `help:"How long fetched data stays cached. 0 disables caching." env:"CACHE_TTL" default:"15m"`

	Server   ServerCmd   `cmd:"" help:"Serve the dashboard API."`
	Weeks    WeeksCmd    `cmd:"" help:"List the weeks that have summaries."`
	Show     ShowCmd     `cmd:"" help:"Show one week's summary as markdown."`
	Annual   AnnualCmd   `cmd:"" help:"Show aggregated stats for one year."`
	Years    YearsCmd    `cmd:"" help:"List the years that have summaries."`
	Prefetch PrefetchCmd `cmd:"" help:"Fetch every week once to warm the cache."`
}

type cmdContext struct {
	ws *workspace.Workspace
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	ws, err := workspace.NewWorkspace(&workspace.Options{
		Repo:     cli.Repo,
		Token:    cli.Token,
		Dirs:     splitDirs(cli.Dirs),
		CacheTTL: cli.CacheTTL,
	})
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&cmdContext{
		ws: ws,
	})
	ctx.FatalIfErrorf(err)
}

func splitDirs(list string) []string {
	var result []string
	for _, dir := range strings.Split(list, ",") {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			result = append(result, dir)
		}
	}

	return result
}
