package filtering

import (
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/matching"
	"github.com/spigell/job-tracker/internal/preferences"
)

// Filter represents a single filtering step applied to jobs.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Keep(job *jobs.Job) bool
}

// Step describes the result of executing a filtering step.
type Step struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

// Criteria are the hard constraints and sort order for one listing.
// Blank string fields are wildcards.
type Criteria struct {
	Keyword         string   `mapstructure:"keyword"`
	Location        string   `mapstructure:"location"`
	Mode            string   `mapstructure:"mode"`
	Experience      string   `mapstructure:"experience"`
	Source          string   `mapstructure:"source"`
	SortMode        SortMode `mapstructure:"sort"`
	ShowOnlyMatches bool     `mapstructure:"only-matches"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Engine turns criteria into filter steps, runs them and sorts the result.
type Engine struct {
	scorer matching.Scorer
	logger *zap.Logger
}

// New creates an engine. A nil scorer falls back to the rule matcher and a nil
// logger to a no-op one.
func New(scorer matching.Scorer, logger *zap.Logger) *Engine {
	if scorer == nil {
		scorer = matching.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{scorer: scorer, logger: logger}
}

// Apply returns the jobs matching criteria in the requested order. The input
// slice and the jobs it points to are left untouched.
func Apply(items []*jobs.Job, criteria Criteria, profile *preferences.Profile) []*jobs.Job {
	return New(nil, nil).Apply(items, criteria, profile)
}

func (e *Engine) Apply(items []*jobs.Job, criteria Criteria, profile *preferences.Profile) []*jobs.Job {
	filtered, _ := Run(e.logger, e.Steps(criteria, profile), items)
	Sort(filtered, criteria.SortMode, profile, e.scorer)

	e.logger.Debug("jobs listed",
		zap.Int("total", len(items)),
		zap.Int("visible", len(filtered)),
		zap.String("sort", string(criteria.SortMode)),
		zap.Bool("profile", profile != nil),
	)

	return filtered
}

// Steps builds the filter chain for criteria. Every step is present; steps
// whose criterion is blank are disabled.
func (e *Engine) Steps(criteria Criteria, profile *preferences.Profile) []Filter {
	return []Filter{
		NewKeyword(criteria.Keyword),
		NewLocation(criteria.Location),
		NewField("mode", jobs.JobModeField, criteria.Mode),
		NewField("experience", jobs.JobExperienceField, criteria.Experience),
		NewField("source", jobs.JobSourceField, criteria.Source),
		NewMatchScore(e.scorer, profile, criteria.ShowOnlyMatches),
	}
}

// Describe returns status entries for the steps built from criteria.
func (e *Engine) Describe(criteria Criteria, profile *preferences.Profile) []Status {
	return Describe(e.Steps(criteria, profile))
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially. Each enabled step produces
// a new slice; items itself is never modified.
func Run(logger *zap.Logger, steps []Filter, items []*jobs.Job) ([]*jobs.Job, []Step) {
	if logger == nil {
		logger = zap.NewNop()
	}

	current := make([]*jobs.Job, len(items))
	copy(current, items)

	info := make([]Step, 0, len(steps))
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}

		kept := make([]*jobs.Job, 0, len(current))
		for _, job := range current {
			if step.Keep(job) {
				kept = append(kept, job)
			}
		}

		result := Step{
			Name:    step.Name(),
			Initial: len(current),
			Dropped: len(current) - len(kept),
			Left:    len(kept),
		}
		info = append(info, result)

		logger.Debug("filter step",
			zap.String("name", result.Name),
			zap.Int("initial", result.Initial),
			zap.Int("dropped", result.Dropped),
			zap.Int("left", result.Left),
		)

		current = kept
	}

	return current, info
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
