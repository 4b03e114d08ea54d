package model

import (
	"github.com/samber/lo"
)

// WeeklySummary is one week's worth of GitHub and Linear activity.
// The week ending date (the Saturday closing the window) is the natural key.
type WeeklySummary struct {
	Meta            Meta         `json:"meta"`
	Stats           Stats        `json:"stats"`
	Linear          LinearDetail `json:"linear"`
	GitHub          GitHubDetail `json:"github"`
	CheckIns        []CheckIn    `json:"check_ins"`
	TerminalOutput  string       `json:"terminal_output"`
	FormattedOutput string       `json:"formatted_output,omitempty"`
}

type Meta struct {
	GeneratedAt   string `json:"generated_at"`
	WindowStart   string `json:"window_start"`
	WindowEnd     string `json:"window_end"`
	WeekEnding    string `json:"week_ending"`
	SourceOfTruth string `json:"source_of_truth,omitempty"`
}

type Stats struct {
	PRsMerged           int      `json:"prs_merged"`
	PRsTotal            int      `json:"prs_total"`
	PRReviews           int      `json:"pr_reviews"`
	PRComments          int      `json:"pr_comments"`
	CommitsPushed       int      `json:"commits_pushed"`
	LinearCompleted     int      `json:"linear_completed"`
	LinearWorkedOn      int      `json:"linear_worked_on"`
	LinearIssuesCreated int      `json:"linear_issues_created"`
	Repos               []string `json:"repos"`
}

type GitHubDetail struct {
	MergedPRs []MergedPR `json:"merged_prs"`
	Reviews   []Review   `json:"reviews"`
}

type MergedPR struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Repo     string `json:"repo,omitempty"`
	MergedAt string `json:"merged_at,omitempty"`
}

type Review struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type LinearDetail struct {
	CompletedIssues []Issue `json:"completed_issues"`
	WorkedOnIssues  []Issue `json:"worked_on_issues"`
	CreatedIssues   []Issue `json:"created_issues,omitempty"`
}

type Issue struct {
	Identifier  string `json:"identifier"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Project     string `json:"project,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type CheckIn struct {
	Day     string `json:"day"`
	Content string `json:"content"`
}

// Normalize enforces the record invariants after decoding: counts never
// negative, repos a deduplicated set.
func (s *WeeklySummary) Normalize() {
	st := &s.Stats
	for _, v := range []*int{
		&st.PRsMerged, &st.PRsTotal, &st.PRReviews, &st.PRComments,
		&st.CommitsPushed, &st.LinearCompleted, &st.LinearWorkedOn, &st.LinearIssuesCreated,
	} {
		if *v < 0 {
			*v = 0
		}
	}
	st.Repos = lo.Uniq(st.Repos)
}
