package charts

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nlewis84/weekly-summary/lib/caches"
	"github.com/nlewis84/weekly-summary/lib/model"
	"github.com/nlewis84/weekly-summary/lib/utils"
)

// Store is the part of the summary store the aggregator needs.
type Store interface {
	ListWeeks(ctx context.Context, bustCache bool) ([]string, error)
	FetchWeek(ctx context.Context, week string, bustCache bool) (*model.WeeklySummary, error)
}

// Weeks that failed to resolve are skipped, never zero-filled: an unlogged
// week must not show up as a zero point dragging a trend line down.

const maxConcurrentFetches = 8

type Point struct {
	WeekEnding      string `json:"week_ending"`
	PRsMerged       int    `json:"prs_merged"`
	PRReviews       int    `json:"pr_reviews"`
	LinearCompleted int    `json:"linear_completed"`
	LinearWorkedOn  int    `json:"linear_worked_on"`
	PRsTotal        int    `json:"prs_total"`
	ReposCount      int    `json:"repos_count"`
}

type RepoWeek struct {
	WeekEnding string `json:"week_ending"`
	PRs        int    `json:"prs"`
}

type RepoActivity struct {
	Repo     string     `json:"repo"`
	Weeks    []RepoWeek `json:"weeks"`
	TotalPRs int        `json:"total_prs"`
}

type Data struct {
	DataPoints   []Point        `json:"dataPoints"`
	RepoActivity []RepoActivity `json:"repoActivity"`
}

type week struct {
	weekEnding string
	summary    *model.WeeklySummary
}

// Charts turns the store's weekly records into chart-ready series and
// rollups.
type Charts struct {
	store Store
	cache caches.Cache
}

func New(store Store, cache caches.Cache) *Charts {
	return &Charts{
		store: store,
		cache: cache,
	}
}

// Data builds the weekly chart series plus the per-repository merged-PR
// activity ranking, across every known week.
func (c *Charts) Data(ctx context.Context, bustCache bool) (*Data, error) {
	const key = "charts:data"

	if !bustCache {
		if cached, ok := c.cache.Get(key); ok {
			return cached.(*Data), nil
		}
	}

	keys, err := c.store.ListWeeks(ctx, bustCache)
	if err != nil {
		return nil, err
	}

	weeks, err := c.fetchAll(ctx, keys, bustCache)
	if err != nil {
		return nil, err
	}

	result := &Data{
		DataPoints:   buildPoints(weeks),
		RepoActivity: buildRepoActivity(weeks),
	}

	c.cache.Set(key, result)
	return result, nil
}

// fetchAll resolves the given week keys concurrently, dropping the absent
// ones and preserving the input order in the result.
func (c *Charts) fetchAll(ctx context.Context, keys []string, bustCache bool) ([]week, error) {
	summaries := make([]*model.WeeklySummary, len(keys))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentFetches)

	for i, key := range keys {
		i, key := i, key
		group.Go(func() error {
			summary, err := c.store.FetchWeek(groupCtx, key, bustCache)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	var result []week
	for i, summary := range summaries {
		if summary != nil {
			result = append(result, week{weekEnding: keys[i], summary: summary})
		}
	}
	return result, nil
}

func buildPoints(weeks []week) []Point {
	result := make([]Point, 0, len(weeks))

	for _, w := range weeks {
		s := w.summary.Stats
		result = append(result, Point{
			WeekEnding:      w.weekEnding,
			PRsMerged:       s.PRsMerged,
			PRReviews:       s.PRReviews,
			LinearCompleted: s.LinearCompleted,
			LinearWorkedOn:  s.LinearWorkedOn,
			PRsTotal:        s.PRsTotal,
			ReposCount:      len(s.Repos),
		})
	}

	return result
}

func buildRepoActivity(weeks []week) []RepoActivity {
	perRepo := map[string]map[string]int{}
	var repoOrder []string

	for _, w := range weeks {
		for _, pr := range w.summary.GitHub.MergedPRs {
			repo := utils.IIf(pr.Repo == "", "unknown", pr.Repo)

			byWeek, ok := perRepo[repo]
			if !ok {
				byWeek = map[string]int{}
				perRepo[repo] = byWeek
				repoOrder = append(repoOrder, repo)
			}
			byWeek[w.weekEnding]++
		}
	}

	result := make([]RepoActivity, 0, len(repoOrder))
	for _, repo := range repoOrder {
		byWeek := perRepo[repo]

		repoWeeks := make([]RepoWeek, 0, len(byWeek))
		total := 0
		for weekEnding, prs := range byWeek {
			repoWeeks = append(repoWeeks, RepoWeek{WeekEnding: weekEnding, PRs: prs})
			total += prs
		}
		sort.Slice(repoWeeks, func(i, j int) bool {
			return repoWeeks[i].WeekEnding < repoWeeks[j].WeekEnding
		})

		result = append(result, RepoActivity{
			Repo:     repo,
			Weeks:    repoWeeks,
			TotalPRs: total,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalPRs > result[j].TotalPRs
	})

	return result
}
