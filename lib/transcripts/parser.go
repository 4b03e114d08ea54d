package transcripts

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aquilax/truncate"

	"github.com/nlewis84/weekly-summary/lib/model"
)

const (
	excerptLines    = 15
	excerptMaxChars = 800
)

var weekEndingRe = regexp.MustCompile(`# Week in review [—-] (\d{4}-\d{2}-\d{2})`)

// statRule extracts one numeric statistic from the raw text. Each pattern
// tolerates the natural-language phrasings seen in real transcripts; the
// first non-empty capture group wins.
type statRule struct {
	pattern *regexp.Regexp
	field   func(*model.Stats) *int
}

var statRules = []statRule{
	{
		// "21 PRs merged", "25 PRs that were merged", "merged 21 PRs"
		pattern: regexp.MustCompile(`(?i)(\d+)\s*PRs?\s*(?:that\s+were\s+)?merged|merged\s*(\d+)\s*PRs?`),
		field:   func(s *model.Stats) *int { return &s.PRsMerged },
	},
	{
		// "25 total PRs", "31 PRs that were created or updated"
		pattern: regexp.MustCompile(`(?i)(\d+)\s+total\s+PRs?|(\d+)\s+PRs?\s+that\s+were\s+(?:created|updated)`),
		field:   func(s *model.Stats) *int { return &s.PRsTotal },
	},
	{
		// "16 PR reviews", "reviewed 16 PRs"
		pattern: regexp.MustCompile(`(?i)(\d+)\s*PR\s*reviews?|reviewed\s*(\d+)\s*PRs?`),
		field:   func(s *model.Stats) *int { return &s.PRReviews },
	},
	{
		// "29 linear issues that I completed", "linear issues completed was at 29"
		pattern: regexp.MustCompile(`(?i)(\d+)\s+linear\s+(?:issues?\s+)?(?:that\s+I\s+)?completed|linear\s+(?:issues?\s+)?completed\s+(?:was\s+at\s+)?(\d+)`),
		field:   func(s *model.Stats) *int { return &s.LinearCompleted },
	},
	{
		// "35 total linear issues that I worked on", "linear issues worked on was 33"
		pattern: regexp.MustCompile(`(?i)(\d+)\s+(?:total\s+)?linear\s+(?:issues?\s+)?(?:that\s+I\s+)?worked\s+on|linear\s+(?:issues?\s+)?worked\s+on\s+(?:was\s+)?(\d+)`),
		field:   func(s *model.Stats) *int { return &s.LinearWorkedOn },
	},
	{
		// "9 commits pushed", "pushed 9 commits", "9 commits this week"
		pattern: regexp.MustCompile(`(?i)(\d+)\s+commits?\s+pushed|pushed\s+(\d+)\s+commits?|(\d+)\s+commits?\s+this\s+week`),
		field:   func(s *model.Stats) *int { return &s.CommitsPushed },
	},
}

var (
	timestampRe = regexp.MustCompile(`(?m)^\d+:\d+\s+`)
	separatorRe = regexp.MustCompile(`---\s*`)
)

// Parser converts a narrated week-in-review transcript into the same record
// shape as a structured summary. Stats not found in the text default to
// zero. Repository names are inferred from a closed keyword vocabulary, not
// extracted generically.
type Parser struct {
	// Keywords maps a lowercased text fragment to the repository it
	// implies.
	Keywords map[string]string

	// DefaultRepos is used when no keyword matches.
	DefaultRepos []string

	Now func() time.Time
}

func NewParser() *Parser {
	return &Parser{
		Keywords: map[string]string{
			"admin":           "apollos-admin",
			"apollos-admin":   "apollos-admin",
			"cluster":         "apollos-cluster",
			"apollos-cluster": "apollos-cluster",
		},
		DefaultRepos: []string{"apollos-admin"},
		Now:          time.Now,
	}
}

// Parse returns nil if the text has no recognizable week-ending heading.
// Everything else is best effort.
func (p *Parser) Parse(content string) *model.WeeklySummary {
	weekEnding := parseWeekEnding(content)
	if weekEnding == "" {
		return nil
	}

	stats := model.Stats{}
	for _, rule := range statRules {
		if n, ok := matchInt(rule.pattern, content); ok {
			*rule.field(&stats) = n
		}
	}

	stats.Repos = p.inferRepos(content)

	windowStart, windowEnd := windowForWeekEnding(weekEnding)
	narrative := buildNarrative(content, weekEnding)

	return &model.WeeklySummary{
		Meta: model.Meta{
			GeneratedAt:   p.Now().UTC().Format(isoMillis),
			WindowStart:   windowStart,
			WindowEnd:     windowEnd,
			WeekEnding:    weekEnding,
			SourceOfTruth: "Week-in-review video transcript",
		},
		Stats: stats,
		Linear: model.LinearDetail{
			CompletedIssues: []model.Issue{},
			WorkedOnIssues:  []model.Issue{},
			CreatedIssues:   []model.Issue{},
		},
		GitHub: model.GitHubDetail{
			MergedPRs: []model.MergedPR{},
			Reviews:   []model.Review{},
		},
		CheckIns:        []model.CheckIn{{Day: "Week in review", Content: narrative}},
		TerminalOutput:  buildTerminalBlock(stats, narrative),
		FormattedOutput: narrative,
	}
}

func parseWeekEnding(content string) string {
	m := weekEndingRe.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}

func matchInt(pattern *regexp.Regexp, content string) (int, bool) {
	m := pattern.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}

	for _, group := range m[1:] {
		if group != "" {
			n, err := strconv.Atoi(group)
			if err != nil {
				return 0, false
			}
			return n, true
		}
	}

	return 0, false
}

func (p *Parser) inferRepos(content string) []string {
	lower := strings.ToLower(content)

	var repos []string
	seen := map[string]bool{}
	for fragment, repo := range p.Keywords {
		if strings.Contains(lower, fragment) && !seen[repo] {
			seen[repo] = true
			repos = append(repos, repo)
		}
	}

	if len(repos) == 0 {
		return append([]string{}, p.DefaultRepos...)
	}

	sort.Strings(repos)
	return repos
}

const isoMillis = "2006-01-02T15:04:05.000Z"

func windowForWeekEnding(weekEnding string) (string, string) {
	day, err := time.Parse("2006-01-02", weekEnding)
	if err != nil {
		return "", ""
	}

	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999_000_000, time.UTC)
	start := end.AddDate(0, 0, -6).Truncate(24 * time.Hour)

	return start.Format(isoMillis), end.Format(isoMillis)
}

func buildNarrative(content string, weekEnding string) string {
	stripped := timestampRe.ReplaceAllString(content, "")
	stripped = separatorRe.ReplaceAllString(stripped, "\n\n")
	stripped = strings.TrimSpace(stripped)

	var substantive []string
	for _, line := range strings.Split(stripped, "\n") {
		if len(strings.TrimSpace(line)) > 20 {
			substantive = append(substantive, line)
		}
		if len(substantive) == excerptLines {
			break
		}
	}

	excerpt := truncate.Truncate(strings.Join(substantive, " "), excerptMaxChars, "…", truncate.PositionEnd)

	return fmt.Sprintf("Week in review (%v): %v", weekEnding, excerpt)
}

func buildTerminalBlock(stats model.Stats, narrative string) string {
	return strings.Join([]string{
		"Weekly Work Summary (from transcript)",
		"",
		fmt.Sprintf("Stats: %d PRs merged | %d total | %d reviews | %d Linear completed | %d worked on | %d created",
			stats.PRsMerged, stats.PRsTotal, stats.PRReviews,
			stats.LinearCompleted, stats.LinearWorkedOn, stats.LinearIssuesCreated),
		"",
		narrative,
	}, "\n")
}
