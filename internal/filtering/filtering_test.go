package filtering

import (
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/preferences"
)

// fixedScorer returns preset scores by job id.
type fixedScorer map[int]int

func (s fixedScorer) Score(job *jobs.Job, profile *preferences.Profile) int {
	if profile == nil {
		return 0
	}
	return s[job.ID]
}

func sampleJobs() []*jobs.Job {
	return []*jobs.Job{
		{ID: 1, Title: "Senior react developer", Company: "Acme", Location: "Pune", Mode: jobs.ModeRemote, Experience: jobs.ExperienceSenior, Source: jobs.SourceLinkedIn, PostedDaysAgo: 5, SalaryRange: "$50,000"},
		{ID: 2, Title: "Go Engineer", Company: "Globex", Location: "Bengaluru", Mode: jobs.ModeHybrid, Experience: jobs.ExperienceMid, Source: jobs.SourceNaukri, PostedDaysAgo: 0, SalaryRange: "$120,000"},
		{ID: 3, Title: "QA Analyst", Company: "React Labs", Location: "Remote - Pune", Mode: jobs.ModeOnsite, Experience: jobs.ExperienceFresher, Source: jobs.SourceIndeed, PostedDaysAgo: 2, SalaryRange: "abc"},
	}
}

func ids(items []*jobs.Job) []int {
	out := make([]int, 0, len(items))
	for _, job := range items {
		out = append(out, job.ID)
	}
	return out
}

func wildcard() Criteria {
	return Criteria{SortMode: SortLatest}
}

func TestApplyWildcardReturnsAllSortedByLatest(t *testing.T) {
	t.Parallel()

	result := Apply(sampleJobs(), wildcard(), nil)
	if got := ids(result); !slices.Equal(got, []int{2, 3, 1}) {
		t.Fatalf("expected [2 3 1], got %v", got)
	}
}

func TestApplyEmptyCollection(t *testing.T) {
	t.Parallel()

	result := Apply(nil, Criteria{Keyword: "go", SortMode: SortSalary}, preferences.Default())
	if result == nil || len(result) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", result)
	}
}

func TestApplyFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		criteria Criteria
		expect   []int
	}{
		{name: "keyword matches title case-insensitively", criteria: Criteria{Keyword: "REACT"}, expect: []int{1, 3}},
		{name: "keyword matches company", criteria: Criteria{Keyword: "globex"}, expect: []int{2}},
		{name: "keyword is trimmed", criteria: Criteria{Keyword: "  engineer "}, expect: []int{2}},
		{name: "blank keyword is wildcard", criteria: Criteria{Keyword: "   "}, expect: []int{1, 2, 3}},
		{name: "location substring", criteria: Criteria{Location: "pune"}, expect: []int{1, 3}},
		{name: "location does not look at title", criteria: Criteria{Location: "react"}, expect: []int{}},
		{name: "mode exact", criteria: Criteria{Mode: "Hybrid"}, expect: []int{2}},
		{name: "mode is case sensitive", criteria: Criteria{Mode: "hybrid"}, expect: []int{}},
		{name: "experience exact", criteria: Criteria{Experience: "Fresher"}, expect: []int{3}},
		{name: "source exact", criteria: Criteria{Source: "LinkedIn"}, expect: []int{1}},
		{name: "unknown source excludes all", criteria: Criteria{Source: "Monster"}, expect: []int{}},
		{name: "combined", criteria: Criteria{Keyword: "react", Location: "pune", Mode: "Onsite"}, expect: []int{3}},
		{name: "only matches without profile passes", criteria: Criteria{ShowOnlyMatches: true}, expect: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Apply(sampleJobs(), tt.criteria, nil)
			if got := ids(result); !slices.Equal(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestApplyThreshold(t *testing.T) {
	t.Parallel()

	scorer := fixedScorer{1: 45, 2: 35, 3: 40}
	engine := New(scorer, nil)
	profile := &preferences.Profile{MinMatchScore: preferences.MinScore(40)}

	result := engine.Apply(sampleJobs(), Criteria{ShowOnlyMatches: true, SortMode: SortMatch}, profile)
	if got := ids(result); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("expected [1 3], got %v", got)
	}

	result = engine.Apply(sampleJobs(), Criteria{ShowOnlyMatches: false, SortMode: SortMatch}, profile)
	if got := ids(result); !slices.Equal(got, []int{1, 3, 2}) {
		t.Fatalf("expected threshold to be ignored without the toggle, got %v", got)
	}
}

func TestApplyThresholdWithRuleMatcher(t *testing.T) {
	t.Parallel()

	profile, err := preferences.Decode(map[string]any{"roleKeywords": []any{"react"}})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// job 1: title (25) + linkedin (5) = 30, job 3: recency (5) only.
	result := Apply(sampleJobs(), Criteria{ShowOnlyMatches: true}, profile)
	if len(result) != 0 {
		t.Fatalf("expected no job to reach 40, got %v", ids(result))
	}

	profile.MinMatchScore = preferences.MinScore(30)
	result = Apply(sampleJobs(), Criteria{ShowOnlyMatches: true}, profile)
	if got := ids(result); !slices.Equal(got, []int{1}) {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestApplyThresholdDefaultsWhenUnset(t *testing.T) {
	t.Parallel()

	items := []*jobs.Job{
		{ID: 1, Title: "Go Engineer", Source: jobs.SourceNaukri, PostedDaysAgo: 10},
		{ID: 2, Title: "Chef", Source: jobs.SourceNaukri, PostedDaysAgo: 10},
	}

	// no threshold set: the default 40 applies, the title rule alone gives 25
	profile := &preferences.Profile{RoleKeywords: []string{"engineer"}}
	if result := Apply(items, Criteria{ShowOnlyMatches: true}, profile); len(result) != 0 {
		t.Fatalf("expected default threshold to drop every job, got %v", ids(result))
	}

	profile.MinMatchScore = preferences.MinScore(20)
	if got := ids(Apply(items, Criteria{ShowOnlyMatches: true}, profile)); !slices.Equal(got, []int{1}) {
		t.Fatalf("expected [1], got %v", got)
	}

	profile.MinMatchScore = preferences.MinScore(0)
	if got := ids(Apply(items, Criteria{ShowOnlyMatches: true}, profile)); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("expected explicit 0 to keep every job, got %v", got)
	}
}

func TestSortModes(t *testing.T) {
	t.Parallel()

	profile := preferences.Default()
	scorer := fixedScorer{1: 10, 2: 80, 3: 80}

	tests := []struct {
		name    string
		mode    SortMode
		profile *preferences.Profile
		expect  []int
	}{
		{name: "latest", mode: SortLatest, profile: profile, expect: []int{2, 3, 1}},
		{name: "match ties by id", mode: SortMatch, profile: profile, expect: []int{2, 3, 1}},
		{name: "match without profile is id order", mode: SortMatch, profile: nil, expect: []int{1, 2, 3}},
		{name: "salary", mode: SortSalary, profile: profile, expect: []int{2, 1, 3}},
		{name: "unknown keeps order", mode: SortMode("relevance"), profile: profile, expect: []int{1, 2, 3}},
		{name: "empty keeps order", mode: "", profile: profile, expect: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := New(scorer, nil).Apply(sampleJobs(), Criteria{SortMode: tt.mode}, tt.profile)
			if got := ids(result); !slices.Equal(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestSortLatestTiesByID(t *testing.T) {
	t.Parallel()

	items := []*jobs.Job{
		{ID: 9, PostedDaysAgo: 1},
		{ID: 4, PostedDaysAgo: 1},
		{ID: 7, PostedDaysAgo: 0},
	}
	Sort(items, SortLatest, nil, nil)
	if got := ids(items); !slices.Equal(got, []int{7, 4, 9}) {
		t.Fatalf("expected [7 4 9], got %v", got)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := sampleJobs()
	before := ids(items)
	snapshot := *items[0]

	first := Apply(items, Criteria{Keyword: "e", SortMode: SortSalary}, preferences.Default())
	second := Apply(items, Criteria{Keyword: "e", SortMode: SortSalary}, preferences.Default())

	if got := ids(items); !slices.Equal(got, before) {
		t.Fatalf("input order changed: %v", got)
	}
	if items[0].Title != snapshot.Title || items[0].PostedDaysAgo != snapshot.PostedDaysAgo {
		t.Fatalf("input job modified")
	}
	if !slices.Equal(ids(first), ids(second)) {
		t.Fatalf("expected identical results, got %v and %v", ids(first), ids(second))
	}
	for _, job := range first {
		if !slices.Contains(items, job) {
			t.Fatalf("result job %d is not part of the input", job.ID)
		}
	}
}

func TestExtractLeadingInteger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect int
	}{
		{input: "$50,000", expect: 50},
		{input: "$120,000", expect: 120},
		{input: "abc", expect: 0},
		{input: "", expect: 0},
		{input: "abc12def34", expect: 12},
		{input: "₹12-18 LPA", expect: 12},
		{input: "007", expect: 7},
		{input: "99999999999999999999999", expect: 0},
		{input: "3.5 LPA", expect: 3},
	}

	for _, tt := range tests {
		if got := ExtractLeadingInteger(tt.input); got != tt.expect {
			t.Fatalf("%q: expected %d, got %d", tt.input, tt.expect, got)
		}
	}
}

func TestRunReportsSteps(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	engine := New(nil, logger)
	steps := engine.Steps(Criteria{Keyword: "react", Source: "Indeed"}, nil)

	result, info := Run(logger, steps, sampleJobs())
	if got := ids(result); !slices.Equal(got, []int{3}) {
		t.Fatalf("expected [3], got %v", got)
	}

	if len(info) != 2 {
		t.Fatalf("expected 2 executed steps, got %+v", info)
	}
	if info[0] != (Step{Name: "keyword", Initial: 3, Dropped: 1, Left: 2}) {
		t.Fatalf("unexpected keyword step: %+v", info[0])
	}
	if info[1] != (Step{Name: "source", Initial: 2, Dropped: 1, Left: 1}) {
		t.Fatalf("unexpected source step: %+v", info[1])
	}

	entries := observed.FilterMessage("filter step").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 step log entries, got %d", len(entries))
	}
	if entries[0].ContextMap()["name"] != "keyword" {
		t.Fatalf("unexpected log fields: %v", entries[0].ContextMap())
	}
}

func TestDisableByName(t *testing.T) {
	t.Parallel()

	steps := New(nil, nil).Steps(Criteria{Keyword: "react"}, nil)
	DisableByName(steps, "keyword", "disabled for test")

	result, info := Run(nil, steps, sampleJobs())
	if len(result) != 3 || len(info) != 0 {
		t.Fatalf("expected no filtering, got %v / %+v", ids(result), info)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	profile := &preferences.Profile{MinMatchScore: preferences.MinScore(55)}
	statuses := New(nil, nil).Describe(Criteria{Location: " Pune ", ShowOnlyMatches: true}, profile)

	byName := make(map[string]Status, len(statuses))
	for _, status := range statuses {
		byName[status.Name] = status
	}

	if len(byName) != 6 {
		t.Fatalf("expected 6 steps, got %+v", statuses)
	}
	if byName["keyword"].Enabled || byName["keyword"].Reason != wildcardReason {
		t.Fatalf("expected keyword to be a wildcard: %+v", byName["keyword"])
	}
	if !byName["location"].Enabled || byName["location"].Details["contains"] != "pune" {
		t.Fatalf("unexpected location status: %+v", byName["location"])
	}
	if !byName["match_score"].Enabled || byName["match_score"].Details["minimum_match_score"] != "55" {
		t.Fatalf("unexpected match_score status: %+v", byName["match_score"])
	}

	statuses = New(nil, nil).Describe(Criteria{ShowOnlyMatches: true}, nil)
	for _, status := range statuses {
		if status.Name == "match_score" && (status.Enabled || status.Reason != "no preferences set") {
			t.Fatalf("expected match_score disabled without profile: %+v", status)
		}
	}
}
