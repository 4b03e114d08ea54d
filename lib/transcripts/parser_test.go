package transcripts_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlewis84/weekly-summary/lib/transcripts"
)

func newTestParser() *transcripts.Parser {
	p := transcripts.NewParser()
	p.Now = func() time.Time { return time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestParseWithoutHeadingReturnsNil(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	assert.Nil(t, p.Parse("just some notes about the week, merged 7 PRs"))
}

func TestParseExtractsWeekEnding(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	result := p.Parse("# Week in review — 2026-01-31\n\nnothing else")
	require.NotNil(t, result)
	assert.Equal(t, "2026-01-31", result.Meta.WeekEnding)
	assert.Equal(t, "2026-01-25T00:00:00.000Z", result.Meta.WindowStart)
	assert.Equal(t, "2026-01-31T23:59:59.999Z", result.Meta.WindowEnd)
	assert.Equal(t, "Week-in-review video transcript", result.Meta.SourceOfTruth)
}

func TestParseAcceptsPlainHyphenHeading(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	result := p.Parse("# Week in review - 2026-01-31\n")
	require.NotNil(t, result)
	assert.Equal(t, "2026-01-31", result.Meta.WeekEnding)
}

func TestParseStatsPhrasings(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	content := strings.Join([]string{
		"# Week in review — 2026-01-31",
		"This week I merged 7 PRs out of 31 PRs that were created or updated.",
		"I also did 14 PR reviews and pushed 9 commits.",
		"There were 29 linear issues that I completed and 35 total linear issues that I worked on.",
	}, "\n")

	result := p.Parse(content)
	require.NotNil(t, result)

	assert.Equal(t, 7, result.Stats.PRsMerged)
	assert.Equal(t, 31, result.Stats.PRsTotal)
	assert.Equal(t, 14, result.Stats.PRReviews)
	assert.Equal(t, 9, result.Stats.CommitsPushed)
	assert.Equal(t, 29, result.Stats.LinearCompleted)
	assert.Equal(t, 35, result.Stats.LinearWorkedOn)
}

func TestParseAlternatePhrasings(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	content := strings.Join([]string{
		"# Week in review — 2026-01-24",
		"21 PRs merged this time, 25 total PRs.",
		"reviewed 16 PRs.",
		"linear issues completed was at 12, linear issues worked on was 18.",
		"9 commits this week.",
	}, "\n")

	result := p.Parse(content)
	require.NotNil(t, result)

	assert.Equal(t, 21, result.Stats.PRsMerged)
	assert.Equal(t, 25, result.Stats.PRsTotal)
	assert.Equal(t, 16, result.Stats.PRReviews)
	assert.Equal(t, 12, result.Stats.LinearCompleted)
	assert.Equal(t, 18, result.Stats.LinearWorkedOn)
	assert.Equal(t, 9, result.Stats.CommitsPushed)
}

func TestParseUnmatchedStatsDefaultToZero(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	result := p.Parse("# Week in review — 2026-01-31\n\nmerged 7 PRs and 14 PR reviews")
	require.NotNil(t, result)

	assert.Equal(t, 7, result.Stats.PRsMerged)
	assert.Equal(t, 14, result.Stats.PRReviews)
	assert.Equal(t, 0, result.Stats.CommitsPushed)
	assert.Equal(t, 0, result.Stats.PRsTotal)
	assert.Equal(t, 0, result.Stats.LinearCompleted)
	assert.Equal(t, 0, result.Stats.LinearWorkedOn)
	assert.Equal(t, 0, result.Stats.LinearIssuesCreated)
}

func TestParseInfersReposFromKeywords(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	result := p.Parse("# Week in review — 2026-01-31\n\nLots of work on the admin and on cluster scaling.")
	require.NotNil(t, result)

	assert.Equal(t, []string{"apollos-admin", "apollos-cluster"}, result.Stats.Repos)
}

func TestParseFallsBackToDefaultRepos(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	result := p.Parse("# Week in review — 2026-01-31\n\nNothing recognizable here.")
	require.NotNil(t, result)

	assert.Equal(t, []string{"apollos-admin"}, result.Stats.Repos)
}

func TestParseKeywordsAreConfigurable(t *testing.T) {
	t.Parallel()

	p := newTestParser()
	p.Keywords = map[string]string{"gateway": "org/gateway"}
	p.DefaultRepos = []string{"org/misc"}

	result := p.Parse("# Week in review — 2026-01-31\n\nShipped the gateway rewrite.")
	require.NotNil(t, result)
	assert.Equal(t, []string{"org/gateway"}, result.Stats.Repos)

	result = p.Parse("# Week in review — 2026-01-31\n\nVacation mostly.")
	require.NotNil(t, result)
	assert.Equal(t, []string{"org/misc"}, result.Stats.Repos)
}

func TestParseNarrativeExcerpt(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	content := strings.Join([]string{
		"# Week in review — 2026-01-31",
		"0:01 This is the first substantive line of the transcript",
		"0:14 short one",
		"---",
		"0:22 This is the second substantive line with more detail about work",
	}, "\n")

	result := p.Parse(content)
	require.NotNil(t, result)

	assert.Contains(t, result.FormattedOutput, "Week in review (2026-01-31):")
	assert.Contains(t, result.FormattedOutput, "This is the first substantive line")
	assert.Contains(t, result.FormattedOutput, "This is the second substantive line")
	assert.NotContains(t, result.FormattedOutput, "0:01")
	assert.NotContains(t, result.FormattedOutput, "short one")
}

func TestParseNarrativeIsTruncated(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	long := strings.Repeat("This line talks about a very long stretch of work. ", 40)
	result := p.Parse("# Week in review — 2026-01-31\n" + long)
	require.NotNil(t, result)

	// prefix + 800 chars of excerpt, at most
	assert.LessOrEqual(t, len([]rune(result.FormattedOutput)), len("Week in review (2026-01-31): ")+800)
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	content := "# Week in review — 2026-01-31\n\nmerged 7 PRs on admin and cluster work"

	a := p.Parse(content)
	b := p.Parse(content)
	assert.Equal(t, a, b)
}

func TestParseSynthesizesEmptyDetailLists(t *testing.T) {
	t.Parallel()

	p := newTestParser()

	result := p.Parse("# Week in review — 2026-01-31\n\nmerged 7 PRs")
	require.NotNil(t, result)

	assert.Empty(t, result.GitHub.MergedPRs)
	assert.Empty(t, result.GitHub.Reviews)
	assert.Empty(t, result.Linear.CompletedIssues)
	assert.Len(t, result.CheckIns, 1)
	assert.Contains(t, result.TerminalOutput, "7 PRs merged")
}
