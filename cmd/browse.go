package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/logger"
	"github.com/spigell/job-tracker/internal/matching"
	"github.com/spigell/job-tracker/internal/ui"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptChooseJob        = "Choose a job"
	PromptReportByCompany  = "Report by companies"
	PromptJobsToFile       = "Dump jobs to file"
	PromptExit             = "Exit"
	PromptBack             = "back"
	PromptToggleSaved      = "Save / unsave"
	PromptShowDetails      = "Show details"
	browseSearchableLength = 10
)

var errExit = errors.New("exit requested")

var browsePrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptChooseJob, PromptReportByCompany, PromptJobsToFile, PromptExit},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the filtered jobs interactively and save the interesting ones",
	Run: func(_ *cobra.Command, _ []string) {
		browse()
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func browse() {
	s := openSession(sessionOptions{dataset: true})
	defer s.Close()

	visible := &jobs.Jobs{Items: s.engine.Apply(s.jobs.Items, *s.config.Filters, s.profile)}
	if visible.Len() == 0 {
		s.logger.Info("exiting", zap.String("reason", "no jobs match the filters"))
		return
	}

	for {
		s.logger.Info("current list of jobs", zap.Int("count", visible.Len()))

		_, action, err := browsePrompt.Run()
		if err != nil {
			s.logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleBrowseAction(s, action, visible); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			s.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleBrowseAction(s *session, action string, visible *jobs.Jobs) error {
	switch action {
	case PromptChooseJob:
		return chooseJob(s, visible)
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(visible.ReportByCompany(), "", "  ")
		s.logger.Info(string(pretty), zap.Int("jobs count", visible.Len()))
		return nil
	case PromptJobsToFile:
		filename, err := visible.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func chooseJob(s *session, visible *jobs.Jobs) error {
	for {
		items := make([]string, 0, visible.Len()+1)
		for _, job := range visible.Items {
			items = append(items, ui.Option(job, s.saved))
		}
		items = append(items, PromptBack)

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: items,
			Size:  browseSearchableLength,
			Searcher: func(input string, index int) bool {
				return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
			},
		}

		idx, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack || idx >= visible.Len() {
			return nil
		}

		if err := jobActions(s, visible.Items[idx]); err != nil {
			return err
		}
	}
}

func jobActions(s *session, job *jobs.Job) error {
	log := logger.WithJob(s.logger, job)

	for {
		actionPrompt := promptui.Select{
			Label: fmt.Sprintf("%d %s", job.ID, job.Title),
			Items: []string{PromptShowDetails, PromptToggleSaved, PromptBack},
		}

		_, action, err := actionPrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptBack:
			return nil
		case PromptShowDetails:
			var result *matching.Result
			if s.profile != nil {
				explained := matching.Explain(job, s.profile)
				result = &explained
			}
			fmt.Print(ui.Details(job, result, s.saved.IsSaved(job.ID)))
		case PromptToggleSaved:
			state, err := s.saved.Toggle(s.ctx, job.ID)
			if err != nil {
				return err
			}
			if state {
				log.Info("job saved")
			} else {
				log.Info("job removed from saved")
			}
		}
	}
}
