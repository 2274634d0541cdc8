package cmd

import (
	"fmt"

	"github.com/spigell/job-tracker/internal/filtering"
	"github.com/spigell/job-tracker/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultDigestSize = 10

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Show the best matching jobs for the stored preferences",
	Run: func(_ *cobra.Command, _ []string) {
		digest()
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)

	digestCmd.Flags().Int("size", defaultDigestSize, "how many jobs to show")
	viper.BindPFlag("digest.size", digestCmd.Flags().Lookup("size"))
}

func digest() {
	s := openSession(sessionOptions{dataset: true})
	defer s.Close()

	if s.profile == nil {
		s.logger.Info("nothing to digest, no preferences set",
			zap.String("hint", "use the 'prefs set' command"),
		)
		return
	}

	size := s.config.Digest.Size
	if size <= 0 {
		size = defaultDigestSize
	}

	top := s.engine.Apply(s.jobs.Items, digestCriteria(), s.profile)
	if len(top) > size {
		top = top[:size]
	}

	if len(top) == 0 {
		s.logger.Info("no jobs reach the minimum match score",
			zap.Int("minimum_match_score", s.profile.Threshold()),
		)
		return
	}

	table, err := ui.JobsTable(top, s.profile, s.scorer, s.saved)
	if err != nil {
		s.logger.Fatal("rendering digest", zap.Error(err))
	}
	fmt.Println(table)

	s.logger.Info("digest ready", zap.Int("count", len(top)), zap.Int("size", size))
}

// digestCriteria ignores the configured filters: a digest is every job over
// the threshold, best first.
func digestCriteria() filtering.Criteria {
	return filtering.Criteria{
		SortMode:        filtering.SortMatch,
		ShowOnlyMatches: true,
	}
}
