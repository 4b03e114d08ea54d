package workspace

import (
	"time"

	"github.com/nlewis84/weekly-summary/lib/caches"
	"github.com/nlewis84/weekly-summary/lib/charts"
	"github.com/nlewis84/weekly-summary/lib/consoles"
	"github.com/nlewis84/weekly-summary/lib/github"
	"github.com/nlewis84/weekly-summary/lib/transcripts"
)

type Options struct {
	Repo  string
	Token string
	Dirs  []string

	// CacheTTL <= 0 disables caching.
	CacheTTL time.Duration
}

// Workspace wires the shared pieces (cache, GitHub store, charts)
// behind one constructor so commands and the server agree on state.
type Workspace struct {
	console consoles.Console
	cache   caches.Cache
	store   *github.Store
	charts  *charts.Charts
}

func NewWorkspace(opts *Options) (*Workspace, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Repo == "" {
		opts.Repo = "nlewis84/weekly-summary"
	}
	if len(opts.Dirs) == 0 {
		opts.Dirs = []string{"2026-weekly-work-summaries"}
	}

	console := consoles.NewStdOutConsole()
	cache := caches.NewTTL(opts.CacheTTL)

	store, err := github.NewStore(&github.StoreOptions{
		Repo:  opts.Repo,
		Token: opts.Token,
		Dirs:  opts.Dirs,
	}, github.NewTransport(), transcripts.NewParser(), cache)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		console: console,
		cache:   cache,
		store:   store,
		charts:  charts.New(store, cache),
	}, nil
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) Cache() caches.Cache {
	return w.cache
}

func (w *Workspace) Store() *github.Store {
	return w.store
}

func (w *Workspace) Charts() *charts.Charts {
	return w.charts
}
