package cmd

import (
	"github.com/spigell/job-tracker/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var saveCmd = &cobra.Command{
	Use:   "save <job id>...",
	Short: "Save job postings for later",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		save(args)
	},
}

var unsaveCmd = &cobra.Command{
	Use:   "unsave <job id>...",
	Short: "Remove job postings from the saved list",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		unsave(args)
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(unsaveCmd)
}

func save(args []string) {
	s := openSession(sessionOptions{dataset: true})
	defer s.Close()

	for _, arg := range args {
		job, err := s.findJob(arg)
		if err != nil {
			s.logger.Fatal("finding the job", zap.Error(err))
		}

		if err := s.saved.Save(s.ctx, job.ID); err != nil {
			s.logger.Fatal("saving the job", zap.Error(err))
		}

		logger.WithJob(s.logger, job).Info("job saved")
	}

	s.logger.Info("saved jobs", zap.Int("count", s.saved.Len()))
}

// unsave does not need the dataset: ids of jobs that disappeared from it can still be removed.
func unsave(args []string) {
	s := openSession(sessionOptions{})
	defer s.Close()

	for _, arg := range args {
		id, err := parseJobID(arg)
		if err != nil {
			s.logger.Fatal("parsing the job id", zap.Error(err))
		}

		if !s.saved.IsSaved(id) {
			s.logger.Info("job is not saved", zap.Int(logger.FieldJobID, id))
			continue
		}

		if err := s.saved.Unsave(s.ctx, id); err != nil {
			s.logger.Fatal("removing the job", zap.Error(err))
		}

		s.logger.Info("job removed from saved", zap.Int(logger.FieldJobID, id))
	}

	s.logger.Info("saved jobs", zap.Int("count", s.saved.Len()))
}
