package markdown

import (
	"fmt"
	"strings"

	"github.com/nlewis84/weekly-summary/lib/model"
)

// Render builds the markdown document for one weekly summary, the same
// shape the content store keeps next to each structured file.
func Render(s *model.WeeklySummary) string {
	b := strings.Builder{}

	fmt.Fprintf(&b, "# Weekly Work Summary — %v\n\n", s.Meta.WeekEnding)
	fmt.Fprintf(&b, "*Generated %v | Window: %v – %v*\n\n",
		s.Meta.GeneratedAt, datePart(s.Meta.WindowStart), datePart(s.Meta.WindowEnd))

	if s.Meta.SourceOfTruth != "" {
		fmt.Fprintf(&b, "## Source of truth\n\n%v\n\n", s.Meta.SourceOfTruth)
	}

	st := s.Stats
	b.WriteString("## Stats\n\n")
	fmt.Fprintf(&b, "- PRs merged: %v | Total PRs: %v | Reviews: %v | Comments: %v | Commits: %v\n",
		st.PRsMerged, st.PRsTotal, st.PRReviews, st.PRComments, st.CommitsPushed)
	fmt.Fprintf(&b, "- Linear completed: %v | Worked on: %v | Created: %v\n",
		st.LinearCompleted, st.LinearWorkedOn, st.LinearIssuesCreated)
	fmt.Fprintf(&b, "- Repos: %v\n\n", reposLine(st.Repos))

	b.WriteString("## Linear — Completed\n\n")
	for _, i := range s.Linear.CompletedIssues {
		fmt.Fprintf(&b, "- **%v** %v — %v%v\n", i.Identifier, i.Title, projectOr(i.Project), dateSuffix(i.CompletedAt))
	}

	b.WriteString("\n## Linear — Worked on\n\n")
	for _, i := range s.Linear.WorkedOnIssues {
		fmt.Fprintf(&b, "- %v %v\n", i.Identifier, i.Title)
	}

	b.WriteString("\n## Linear — Created\n\n")
	for _, i := range s.Linear.CreatedIssues {
		fmt.Fprintf(&b, "- **%v** %v%v\n", i.Identifier, i.Title, dateSuffix(i.CreatedAt))
	}

	b.WriteString("\n## GitHub — Merged PRs\n\n")
	for _, pr := range s.GitHub.MergedPRs {
		fmt.Fprintf(&b, "- [%v](%v) — %v %v\n", pr.Title, pr.URL, pr.Repo, datePart(pr.MergedAt))
	}

	b.WriteString("\n## Check-ins\n\n")
	for _, c := range s.CheckIns {
		fmt.Fprintf(&b, "### %v\n\n%v\n\n", c.Day, c.Content)
	}

	fmt.Fprintf(&b, "## Terminal output\n\n```\n%v\n```\n", s.TerminalOutput)

	return b.String()
}

func datePart(timestamp string) string {
	if len(timestamp) < 10 {
		return timestamp
	}
	return timestamp[:10]
}

func dateSuffix(timestamp string) string {
	if timestamp == "" {
		return ""
	}
	return fmt.Sprintf(" (%v)", datePart(timestamp))
}

func projectOr(project string) string {
	if project == "" {
		return "—"
	}
	return project
}

func reposLine(repos []string) string {
	if len(repos) == 0 {
		return "—"
	}
	return strings.Join(repos, ", ")
}
