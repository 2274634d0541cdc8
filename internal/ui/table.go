package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/matching"
	"github.com/spigell/job-tracker/internal/preferences"
	"github.com/spigell/job-tracker/internal/utils"
)

const (
	titleWidth   = 40
	savedMarker  = "★"
	unsavedMark  = ""
	noMatchBadge = "-"
)

// SavedChecker reports whether a job is bookmarked.
type SavedChecker interface {
	IsSaved(id int) bool
}

// Badge renders the score with its label, colored by tier.
func Badge(score int) string {
	text := fmt.Sprintf("%d%% %s", score, matching.Label(score))

	switch matching.BadgeTier(score) {
	case matching.TierHigh:
		return pterm.Green(text)
	case matching.TierMedium:
		return pterm.LightGreen(text)
	case matching.TierLow:
		return pterm.Yellow(text)
	default:
		return pterm.Gray(text)
	}
}

// JobsTable renders items as a table. The match column is shown only when a
// profile is present.
func JobsTable(items []*jobs.Job, profile *preferences.Profile, scorer matching.Scorer, saved SavedChecker) (string, error) {
	if scorer == nil {
		scorer = matching.New()
	}

	header := []string{"ID", "Title", "Company", "Location", "Mode", "Experience", "Source", "Posted", "Salary"}
	if profile != nil {
		header = append(header, "Match")
	}
	header = append(header, "Saved")

	data := pterm.TableData{header}
	for _, job := range items {
		row := []string{
			strconv.Itoa(job.ID),
			utils.Truncate(job.Title, titleWidth),
			job.Company,
			job.Location,
			string(job.Mode),
			string(job.Experience),
			string(job.Source),
			jobs.FormatPostedDate(job.PostedDaysAgo),
			job.SalaryRange,
		}
		if profile != nil {
			row = append(row, Badge(scorer.Score(job, profile)))
		}
		row = append(row, savedMark(saved, job.ID))
		data = append(data, row)
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// Details renders a single job with its score breakdown. A nil result means
// no preferences are set.
func Details(job *jobs.Job, result *matching.Result, isSaved bool) string {
	var b strings.Builder

	b.WriteString(pterm.Bold.Sprint(job.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s · %s · %s\n", job.Company, job.Location, job.Mode)
	fmt.Fprintf(&b, "Experience: %s\n", job.Experience)
	fmt.Fprintf(&b, "Salary: %s\n", job.SalaryRange)
	fmt.Fprintf(&b, "Source: %s · %s\n", job.Source, jobs.FormatPostedDate(job.PostedDaysAgo))
	if len(job.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(job.Skills, ", "))
	}
	if isSaved {
		fmt.Fprintf(&b, "Saved: %s\n", savedMarker)
	}

	if result != nil {
		fmt.Fprintf(&b, "Match: %s\n", Badge(result.Score))
		if len(result.Rules) > 0 {
			fmt.Fprintf(&b, "Matched on: %s\n", strings.Join(result.Rules, ", "))
		}
	} else {
		fmt.Fprintf(&b, "Match: %s (no preferences set)\n", noMatchBadge)
	}

	if description := strings.TrimSpace(job.Description); description != "" {
		b.WriteString("\n")
		b.WriteString(description)
		b.WriteString("\n")
	}
	if job.ApplyURL != "" {
		fmt.Fprintf(&b, "\nApply: %s\n", job.ApplyURL)
	}

	return b.String()
}

// Option is the one-line label used in interactive pickers.
func Option(job *jobs.Job, saved SavedChecker) string {
	label := fmt.Sprintf("%d %s / %s / %s / %s",
		job.ID, utils.Truncate(job.Title, titleWidth), job.Company, job.Location, jobs.FormatPostedDate(job.PostedDaysAgo),
	)
	if mark := savedMark(saved, job.ID); mark != unsavedMark {
		label += " " + mark
	}
	return label
}

func savedMark(saved SavedChecker, id int) string {
	if saved != nil && saved.IsSaved(id) {
		return savedMarker
	}
	return unsavedMark
}
