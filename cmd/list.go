package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/job-tracker/internal/filtering"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings matching the filters",
	Run: func(cmd *cobra.Command, _ []string) {
		list(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("keyword", "k", "", "text to find in the title or company")
	listCmd.Flags().StringP("location", "l", "", "text to find in the location")
	listCmd.Flags().String("mode", "", "work mode: Remote, Hybrid or Onsite")
	listCmd.Flags().String("experience", "", "experience: Fresher, 0-1, 1-3 or 3-5")
	listCmd.Flags().String("source", "", "source: LinkedIn, Naukri or Indeed")
	listCmd.Flags().StringP("sort", "s", "", "sort mode: latest, match or salary")
	listCmd.Flags().BoolP("only-matches", "m", false, "show only jobs reaching the minimum match score")
	listCmd.Flags().Bool("saved", false, "show only saved jobs")
	listCmd.Flags().IntP("limit", "n", 0, "show at most n jobs. Default is unlimited.")

	for _, name := range []string{"keyword", "location", "mode", "experience", "source", "sort", "only-matches"} {
		viper.BindPFlag("filters."+name, listCmd.Flags().Lookup(name))
	}
}

func list(cmd *cobra.Command) {
	s := openSession(sessionOptions{dataset: true})
	defer s.Close()

	criteria := *s.config.Filters
	warnUnknownValues(s.logger, criteria)

	if criteria.ShowOnlyMatches && s.profile == nil {
		s.logger.Info("only matches requested, but no preferences set; showing all jobs",
			zap.String("hint", "use the 'prefs set' command"),
		)
	}

	for _, status := range s.engine.Describe(criteria, s.profile) {
		s.logger.Debug("filter",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	items := s.jobs.Items
	if onlySaved, _ := cmd.Flags().GetBool("saved"); onlySaved {
		items = s.saved.Select(items)
		s.logger.Debug("restricting to saved jobs", zap.Int("count", len(items)))
	}

	visible := s.engine.Apply(items, criteria, s.profile)
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(visible) > limit {
		visible = visible[:limit]
	}

	if len(visible) == 0 {
		s.logger.Info("no jobs match the filters", zap.Int("total", s.jobs.Len()))
		return
	}

	table, err := ui.JobsTable(visible, s.profile, s.scorer, s.saved)
	if err != nil {
		s.logger.Fatal("rendering jobs", zap.Error(err))
	}
	fmt.Println(table)

	s.logger.Info("current list of jobs", zap.Int("count", len(visible)), zap.Int("total", s.jobs.Len()))
}

// warnUnknownValues points out filter values that can never match. They are
// still applied as given.
func warnUnknownValues(logger *zap.Logger, criteria filtering.Criteria) {
	check := func(name, value string, known []string) {
		value = strings.TrimSpace(value)
		if value != "" && !slices.Contains(known, value) {
			logger.Warn("unknown filter value",
				zap.String("filter", name),
				zap.String("value", value),
				zap.Strings("known", known),
			)
		}
	}

	check("mode", criteria.Mode, toStrings(jobs.Modes))
	check("experience", criteria.Experience, toStrings(jobs.Experiences))
	check("source", criteria.Source, toStrings(jobs.Sources))
	check("sort", string(criteria.SortMode), toStrings(filtering.SortModes))
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, string(value))
	}
	return out
}
