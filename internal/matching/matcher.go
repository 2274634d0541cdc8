package matching

import (
	"strings"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/preferences"
)

const (
	RuleTitle       = "title"
	RuleDescription = "description"
	RuleLocation    = "location"
	RuleMode        = "mode"
	RuleExperience  = "experience"
	RuleSkills      = "skills"
	RuleRecency     = "recency"
	RuleSource      = "source"
)

const (
	titleWeight       = 25
	descriptionWeight = 15
	locationWeight    = 15
	modeWeight        = 10
	experienceWeight  = 10
	skillsWeight      = 15
	recencyWeight     = 5
	sourceWeight      = 5

	recentDays  = 2
	bonusSource = jobs.SourceLinkedIn
	maxScore    = preferences.MaxMatchScore
)

// Scorer rates how well a job fits a preference profile.
type Scorer interface {
	Score(job *jobs.Job, profile *preferences.Profile) int
}

// Result is a score together with the rules that contributed to it.
type Result struct {
	Score int
	Rules []string
}

// RuleMatcher is the default Scorer backed by the fixed rule table.
type RuleMatcher struct{}

func New() *RuleMatcher {
	return &RuleMatcher{}
}

func (m *RuleMatcher) Score(job *jobs.Job, profile *preferences.Profile) int {
	return Score(job, profile)
}

// Score returns the match score of job for profile in [0, 100].
// A nil profile or job always scores 0.
func Score(job *jobs.Job, profile *preferences.Profile) int {
	return Explain(job, profile).Score
}

// Explain evaluates every rule independently. Rules only ever add points.
func Explain(job *jobs.Job, profile *preferences.Profile) Result {
	result := Result{Rules: []string{}}
	if job == nil || profile == nil {
		return result
	}

	award := func(rule string, points int, ok bool) {
		if ok {
			result.Score += points
			result.Rules = append(result.Rules, rule)
		}
	}

	award(RuleTitle, titleWeight, containsAny(job.Title, profile.RoleKeywords))
	award(RuleDescription, descriptionWeight, containsAny(job.Description, profile.RoleKeywords))
	award(RuleLocation, locationWeight, containsAny(job.Location, profile.PreferredLocations))
	award(RuleMode, modeWeight, profile.HasMode(job.Mode))
	award(RuleExperience, experienceWeight, profile.ExperienceLevel != "" && job.Experience == profile.ExperienceLevel)
	award(RuleSkills, skillsWeight, skillsOverlap(job.Skills, profile.Skills))
	award(RuleRecency, recencyWeight, job.PostedDaysAgo <= recentDays)
	award(RuleSource, sourceWeight, job.Source == bonusSource)

	if result.Score > maxScore {
		result.Score = maxScore
	}

	return result
}

// containsAny reports whether any needle is a case-insensitive substring of text.
// Blank needles never match.
func containsAny(text string, needles []string) bool {
	text = strings.ToLower(text)
	for _, needle := range needles {
		needle = strings.ToLower(strings.TrimSpace(needle))
		if needle != "" && strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// skillsOverlap matches when one skill contains the other, in either direction.
func skillsOverlap(jobSkills, wanted []string) bool {
	for _, have := range jobSkills {
		have = strings.ToLower(strings.TrimSpace(have))
		if have == "" {
			continue
		}
		for _, want := range wanted {
			want = strings.ToLower(strings.TrimSpace(want))
			if want == "" {
				continue
			}
			if strings.Contains(have, want) || strings.Contains(want, have) {
				return true
			}
		}
	}
	return false
}
