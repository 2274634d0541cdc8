package cmd

import (
	"errors"
	"log"

	"github.com/spigell/job-tracker/internal/filtering"
	"github.com/spigell/job-tracker/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "job-tracker"
)

type Config struct {
	Dataset string              `mapstructure:"dataset"`
	Storage *storage.Config     `mapstructure:"storage"`
	Filters *filtering.Criteria `mapstructure:"filters"`
	Digest  *DigestConfig       `mapstructure:"digest"`
}

type DigestConfig struct {
	Size int `mapstructure:"size"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-tracker is a simple cli for browsing, scoring and saving job postings",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("dataset", "JOB_TRACKER_DATASET"); err != nil {
		log.Fatalf("binding JOB_TRACKER_DATASET environment variable: %v", err)
	}
	if err := viper.BindEnv("storage.url", "JOB_TRACKER_REDIS_URL"); err != nil {
		log.Fatalf("binding JOB_TRACKER_REDIS_URL environment variable: %v", err)
	}

	viper.SetDefault("dataset", "jobs.json")
	viper.SetDefault("storage.driver", storage.DriverSQLite)
	viper.SetDefault("storage.path", app+".db")
	viper.SetDefault("filters.sort", string(filtering.SortLatest))
	viper.SetDefault("digest.size", defaultDigestSize)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-tracker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("dataset", "", "a json or yaml file with job postings")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("dataset", rootCmd.PersistentFlags().Lookup("dataset"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was requested explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Storage == nil {
		config.Storage = &storage.Config{}
	}
	if config.Filters == nil {
		config.Filters = &filtering.Criteria{}
	}
	if config.Digest == nil {
		config.Digest = &DigestConfig{Size: defaultDigestSize}
	}

	return config, nil
}
