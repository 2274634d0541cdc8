package cmd

import (
	"fmt"

	"github.com/spigell/job-tracker/internal/logger"
	"github.com/spigell/job-tracker/internal/matching"
	"github.com/spigell/job-tracker/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var showCmd = &cobra.Command{
	Use:   "show <job id>",
	Short: "Show a job posting with its match breakdown",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		show(args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func show(arg string) {
	s := openSession(sessionOptions{dataset: true})
	defer s.Close()

	job, err := s.findJob(arg)
	if err != nil {
		s.logger.Fatal("finding the job", zap.Error(err))
	}

	var result *matching.Result
	if s.profile != nil {
		explained := matching.Explain(job, s.profile)
		result = &explained
		logger.WithJob(s.logger, job).Debug("match breakdown", logger.MatchFields(explained.Score, explained.Rules)...)
	}

	fmt.Print(ui.Details(job, result, s.saved.IsSaved(job.ID)))
}
