package filtering

import (
	"strconv"
	"strings"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/matching"
	"github.com/spigell/job-tracker/internal/preferences"
)

const wildcardReason = "no value set"

// toggle carries the enabled state shared by every step.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// textFilter keeps jobs where the needle is a case-insensitive substring of
// any of the selected fields.
type textFilter struct {
	toggle
	name   string
	needle string
	fields func(job *jobs.Job) []string
}

// NewKeyword creates a filter matching the keyword against title or company.
func NewKeyword(keyword string) Filter {
	return newText("keyword", keyword, func(job *jobs.Job) []string {
		return []string{job.Title, job.Company}
	})
}

// NewLocation creates a filter matching the location text against the job location.
func NewLocation(location string) Filter {
	return newText("location", location, func(job *jobs.Job) []string {
		return []string{job.Location}
	})
}

func newText(name, value string, fields func(job *jobs.Job) []string) *textFilter {
	f := &textFilter{
		name:   name,
		needle: strings.ToLower(strings.TrimSpace(value)),
		fields: fields,
	}
	if f.needle == "" {
		f.Disable(wildcardReason)
	}
	return f
}

func (f *textFilter) Name() string { return f.name }

func (f *textFilter) Keep(job *jobs.Job) bool {
	for _, field := range f.fields(job) {
		if strings.Contains(strings.ToLower(field), f.needle) {
			return true
		}
	}
	return false
}

func (f *textFilter) Status() Status {
	details := map[string]string{}
	if f.needle != "" {
		details["contains"] = f.needle
	}
	return Status{Name: f.name, Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

// fieldFilter keeps jobs whose field is exactly equal to the wanted value.
type fieldFilter struct {
	toggle
	name   string
	field  string
	wanted string
}

// NewField creates an exact equality filter over one of the jobs.Job*Field names.
func NewField(name, field, wanted string) Filter {
	f := &fieldFilter{
		name:   name,
		field:  field,
		wanted: strings.TrimSpace(wanted),
	}
	if f.wanted == "" {
		f.Disable(wildcardReason)
	}
	return f
}

func (f *fieldFilter) Name() string { return f.name }

func (f *fieldFilter) Keep(job *jobs.Job) bool {
	return job.GetStringField(f.field) == f.wanted
}

func (f *fieldFilter) Status() Status {
	details := map[string]string{}
	if f.wanted != "" {
		details["equals"] = f.wanted
	}
	return Status{Name: f.name, Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

// matchScoreFilter keeps jobs scoring at least the profile threshold.
type matchScoreFilter struct {
	toggle
	scorer    matching.Scorer
	profile   *preferences.Profile
	threshold int
}

// NewMatchScore creates the threshold filter. It is only active when enabled
// is set and a profile exists.
func NewMatchScore(scorer matching.Scorer, profile *preferences.Profile, enabled bool) Filter {
	if scorer == nil {
		scorer = matching.New()
	}

	f := &matchScoreFilter{
		scorer:    scorer,
		profile:   profile,
		threshold: profile.Threshold(),
	}

	switch {
	case !enabled:
		f.Disable("only matches is not requested")
	case profile == nil:
		f.Disable("no preferences set")
	}
	return f
}

func (f *matchScoreFilter) Name() string { return "match_score" }

func (f *matchScoreFilter) Keep(job *jobs.Job) bool {
	return f.scorer.Score(job, f.profile) >= f.threshold
}

func (f *matchScoreFilter) Status() Status {
	details := map[string]string{
		"minimum_match_score": strconv.Itoa(f.threshold),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
