package model

// MonthlyStats sums the scalar stats of every week whose ending date falls
// inside one calendar month. Derived data, never persisted.
type MonthlyStats struct {
	Month string `json:"month"` // YYYY-MM
	Label string `json:"label"` // "Jan 2026"

	PRsMerged           int `json:"prs_merged"`
	PRsTotal            int `json:"prs_total"`
	PRReviews           int `json:"pr_reviews"`
	PRComments          int `json:"pr_comments"`
	CommitsPushed       int `json:"commits_pushed"`
	LinearCompleted     int `json:"linear_completed"`
	LinearWorkedOn      int `json:"linear_worked_on"`
	LinearIssuesCreated int `json:"linear_issues_created"`

	WeekCount int `json:"week_count"`
}

type RepoCount struct {
	Repo string `json:"repo"`
	PRs  int    `json:"prs"`
}

type ProjectCount struct {
	Project string `json:"project"`
	Issues  int    `json:"issues"`
}

type AnnualStats struct {
	Year   string         `json:"year"`
	Months []MonthlyStats `json:"months"`

	TotalPRsMerged           int `json:"total_prs_merged"`
	TotalPRsTotal            int `json:"total_prs_total"`
	TotalPRReviews           int `json:"total_pr_reviews"`
	TotalPRComments          int `json:"total_pr_comments"`
	TotalCommitsPushed       int `json:"total_commits_pushed"`
	TotalLinearCompleted     int `json:"total_linear_completed"`
	TotalLinearWorkedOn      int `json:"total_linear_worked_on"`
	TotalLinearIssuesCreated int `json:"total_linear_issues_created"`

	TopRepos    []RepoCount    `json:"topRepos"`
	TopProjects []ProjectCount `json:"topProjects"`

	Weeks []string `json:"weeks"`
}
