package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/utils"
)

const (
	FieldJobID    = "job_id"
	FieldJobTitle = "job_title"
	FieldCompany  = "company"
	FieldSource   = "source"
	FieldScore    = "match_score"
	FieldRules    = "matched_rules"

	// titles in logs are cut to keep console lines readable
	logTitleWidth = 60
)

// JobFields returns the fields identifying a job. Blank text fields are
// omitted and a nil job yields no fields.
func JobFields(job *jobs.Job) []zap.Field {
	if job == nil {
		return nil
	}

	fields := []zap.Field{zap.Int(FieldJobID, job.ID)}
	if title := utils.Truncate(job.Title, logTitleWidth); title != "" {
		fields = append(fields, zap.String(FieldJobTitle, title))
	}
	if company := strings.TrimSpace(job.Company); company != "" {
		fields = append(fields, zap.String(FieldCompany, company))
	}
	if job.Source != "" {
		fields = append(fields, zap.String(FieldSource, string(job.Source)))
	}
	return fields
}

// MatchFields describes a match score and the rules behind it.
func MatchFields(score int, rules []string) []zap.Field {
	if rules == nil {
		rules = []string{}
	}
	return []zap.Field{zap.Int(FieldScore, score), zap.Strings(FieldRules, rules)}
}

// WithJob attaches the job fields to logger. A nil logger becomes a no-op one.
func WithJob(logger *zap.Logger, job *jobs.Job) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := JobFields(job)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}
