package filtering

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/matching"
	"github.com/spigell/job-tracker/internal/preferences"
)

type SortMode string

const (
	SortLatest SortMode = "latest"
	SortMatch  SortMode = "match"
	SortSalary SortMode = "salary"
)

// SortModes lists the supported sort modes.
var SortModes = []SortMode{SortLatest, SortMatch, SortSalary}

// Sort orders items in place. Equal keys are ordered by job id ascending.
// Unknown modes leave items as they are.
func Sort(items []*jobs.Job, mode SortMode, profile *preferences.Profile, scorer matching.Scorer) {
	switch mode {
	case SortLatest:
		slices.SortFunc(items, func(a, b *jobs.Job) int {
			return cmp.Or(cmp.Compare(a.PostedDaysAgo, b.PostedDaysAgo), cmp.Compare(a.ID, b.ID))
		})
	case SortMatch:
		if scorer == nil {
			scorer = matching.New()
		}
		scores := make(map[*jobs.Job]int, len(items))
		for _, job := range items {
			scores[job] = scorer.Score(job, profile)
		}
		slices.SortFunc(items, func(a, b *jobs.Job) int {
			return cmp.Or(cmp.Compare(scores[b], scores[a]), cmp.Compare(a.ID, b.ID))
		})
	case SortSalary:
		floors := make(map[*jobs.Job]int, len(items))
		for _, job := range items {
			floors[job] = ExtractLeadingInteger(job.SalaryRange)
		}
		slices.SortFunc(items, func(a, b *jobs.Job) int {
			return cmp.Or(cmp.Compare(floors[b], floors[a]), cmp.Compare(a.ID, b.ID))
		})
	}
}

// ExtractLeadingInteger returns the first run of ASCII digits in text, scanning
// left to right. Text without digits, or with a run too large for int, yields 0.
// Separators end the run, so "$50,000" yields 50.
func ExtractLeadingInteger(text string) int {
	start := -1
	end := len(text)
	for i := 0; i < len(text); i++ {
		isDigit := text[i] >= '0' && text[i] <= '9'
		if start < 0 && isDigit {
			start = i
			continue
		}
		if start >= 0 && !isDigit {
			end = i
			break
		}
	}
	if start < 0 {
		return 0
	}

	value, err := strconv.Atoi(text[start:end])
	if err != nil {
		return 0
	}
	return value
}
