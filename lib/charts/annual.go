package charts

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/nlewis84/weekly-summary/lib/model"
	"github.com/nlewis84/weekly-summary/lib/utils"
)

const (
	topSize = 10

	// placeholder project for completed issues that carry none
	noProject = "—"
)

// Annual rolls a year's weeks up into per-month sums, year totals and
// top-10 leaderboards. Summing the months gives exactly the same totals as
// summing the weeks directly.
func (c *Charts) Annual(ctx context.Context, year string, bustCache bool) (*model.AnnualStats, error) {
	key := "charts:annual:" + year

	if !bustCache {
		if cached, ok := c.cache.Get(key); ok {
			return cached.(*model.AnnualStats), nil
		}
	}

	keys, err := c.store.ListWeeks(ctx, bustCache)
	if err != nil {
		return nil, err
	}

	yearKeys := lo.Filter(keys, func(w string, _ int) bool {
		return strings.HasPrefix(w, year)
	})

	weeks, err := c.fetchAll(ctx, yearKeys, bustCache)
	if err != nil {
		return nil, err
	}

	result := buildAnnual(year, yearKeys, weeks)

	c.cache.Set(key, result)
	return result, nil
}

// Years returns the distinct years covered by the store, most recent
// first.
func (c *Charts) Years(ctx context.Context, bustCache bool) ([]string, error) {
	const key = "charts:years"

	if !bustCache {
		if cached, ok := c.cache.Get(key); ok {
			return cached.([]string), nil
		}
	}

	weeks, err := c.store.ListWeeks(ctx, bustCache)
	if err != nil {
		return nil, err
	}

	years := lo.Uniq(lo.Map(weeks, func(w string, _ int) string {
		return w[:4]
	}))
	utils.SortDesc(years)

	c.cache.Set(key, years)
	return years, nil
}

func buildAnnual(year string, yearKeys []string, weeks []week) *model.AnnualStats {
	months := map[string]*model.MonthlyStats{}
	var monthOrder []string

	repoCounts := map[string]int{}
	var repoOrder []string

	projectCounts := map[string]int{}
	var projectOrder []string

	for _, w := range weeks {
		monthKey := w.weekEnding[:7] // YYYY-MM

		month, ok := months[monthKey]
		if !ok {
			month = &model.MonthlyStats{
				Month: monthKey,
				Label: monthLabel(monthKey),
			}
			months[monthKey] = month
			monthOrder = append(monthOrder, monthKey)
		}

		s := w.summary.Stats
		month.PRsMerged += s.PRsMerged
		month.PRsTotal += s.PRsTotal
		month.PRReviews += s.PRReviews
		month.PRComments += s.PRComments
		month.CommitsPushed += s.CommitsPushed
		month.LinearCompleted += s.LinearCompleted
		month.LinearWorkedOn += s.LinearWorkedOn
		month.LinearIssuesCreated += s.LinearIssuesCreated
		month.WeekCount++

		// one increment per merged PR entry, not per week
		for _, pr := range w.summary.GitHub.MergedPRs {
			repo := utils.IIf(pr.Repo == "", "unknown", pr.Repo)
			if _, seen := repoCounts[repo]; !seen {
				repoOrder = append(repoOrder, repo)
			}
			repoCounts[repo]++
		}

		for _, issue := range w.summary.Linear.CompletedIssues {
			project := utils.IIf(issue.Project == "", noProject, issue.Project)
			if _, seen := projectCounts[project]; !seen {
				projectOrder = append(projectOrder, project)
			}
			projectCounts[project]++
		}
	}

	sort.Strings(monthOrder)

	result := &model.AnnualStats{
		Year:   year,
		Months: make([]model.MonthlyStats, 0, len(monthOrder)),
		Weeks:  append([]string{}, yearKeys...),
	}
	sort.Strings(result.Weeks)

	for _, monthKey := range monthOrder {
		month := months[monthKey]
		result.Months = append(result.Months, *month)

		result.TotalPRsMerged += month.PRsMerged
		result.TotalPRsTotal += month.PRsTotal
		result.TotalPRReviews += month.PRReviews
		result.TotalPRComments += month.PRComments
		result.TotalCommitsPushed += month.CommitsPushed
		result.TotalLinearCompleted += month.LinearCompleted
		result.TotalLinearWorkedOn += month.LinearWorkedOn
		result.TotalLinearIssuesCreated += month.LinearIssuesCreated
	}

	result.TopRepos = lo.Map(topK(repoOrder, repoCounts), func(repo string, _ int) model.RepoCount {
		return model.RepoCount{Repo: repo, PRs: repoCounts[repo]}
	})
	result.TopProjects = lo.Map(topK(projectOrder, projectCounts), func(project string, _ int) model.ProjectCount {
		return model.ProjectCount{Project: project, Issues: projectCounts[project]}
	})

	return result
}

// topK ranks keys by count descending, ties broken by first-encountered
// order, keeping the top 10.
func topK(order []string, counts map[string]int) []string {
	ranked := append([]string{}, order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if len(ranked) > topSize {
		ranked = ranked[:topSize]
	}
	return ranked
}

func monthLabel(monthKey string) string {
	parsed, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}

	return fmt.Sprintf("%v %v", parsed.Month().String()[:3], parsed.Year())
}
