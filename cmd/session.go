package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/spigell/job-tracker/internal/filtering"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/logger"
	"github.com/spigell/job-tracker/internal/matching"
	"github.com/spigell/job-tracker/internal/preferences"
	"github.com/spigell/job-tracker/internal/saved"
	"github.com/spigell/job-tracker/internal/storage"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// session bundles everything a command needs. Commands create one per run.
type session struct {
	ctx     context.Context
	logger  *zap.Logger
	config  *Config
	jobs    *jobs.Jobs
	store   storage.Store
	profile *preferences.Profile
	saved   *saved.Jobs
	scorer  matching.Scorer
	engine  *filtering.Engine
}

type sessionOptions struct {
	dataset bool
}

// openSession builds the logger, reads the config, opens the store and loads
// the user state. Any failure is fatal.
func openSession(opts sessionOptions) *session {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	store, err := storage.Open(ctx, config.Storage)
	if err != nil {
		logger.Fatal("opening storage",
			zap.Error(err),
			zap.String("driver", config.Storage.Driver),
		)
	}

	profile, err := preferences.Load(ctx, store)
	if err != nil {
		if profile == nil {
			logger.Warn("ignoring stored preferences", zap.Error(err))
		} else {
			logger.Warn("some stored preferences were dropped", zap.Error(err))
		}
	}

	savedJobs, err := saved.Load(ctx, store)
	if err != nil {
		logger.Fatal("loading saved jobs", zap.Error(err))
	}

	scorer := matching.New()
	s := &session{
		ctx:     ctx,
		logger:  logger,
		config:  config,
		store:   store,
		profile: profile,
		saved:   savedJobs,
		scorer:  scorer,
		engine:  filtering.New(scorer, logger),
	}

	if opts.dataset {
		s.jobs, err = jobs.LoadFromFile(config.Dataset)
		if err != nil {
			logger.Fatal("loading the dataset",
				zap.Error(err),
				zap.String("dataset", config.Dataset),
				zap.String("hint", "set the 'dataset' key, --dataset flag or JOB_TRACKER_DATASET environment variable"),
			)
		}
		logger.Debug("dataset loaded", zap.String("dataset", config.Dataset), zap.Int("count", s.jobs.Len()))
	}

	return s
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing storage", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// findJob resolves a job id argument against the dataset.
func (s *session) findJob(arg string) (*jobs.Job, error) {
	id, err := parseJobID(arg)
	if err != nil {
		return nil, err
	}

	job := s.jobs.FindByID(id)
	if job == nil {
		return nil, fmt.Errorf("there is no such job id %d", id)
	}
	return job, nil
}

func parseJobID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q: %w", arg, err)
	}
	return id, nil
}
