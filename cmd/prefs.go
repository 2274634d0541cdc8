package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spigell/job-tracker/internal/preferences"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage the preference profile used for match scores",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored preferences",
	Run: func(_ *cobra.Command, _ []string) {
		prefsShow()
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the stored preferences. Only the given flags are changed.",
	Run: func(cmd *cobra.Command, _ []string) {
		prefsSet(cmd)
	},
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored preferences",
	Run: func(_ *cobra.Command, _ []string) {
		prefsClear()
	},
}

// prefsFlags maps set flags to profile fields.
var prefsFlags = map[string]string{
	"keywords":   "roleKeywords",
	"locations":  "preferredLocations",
	"modes":      "preferredMode",
	"experience": "experienceLevel",
	"skills":     "skills",
	"min-score":  "minMatchScore",
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsClearCmd)

	prefsSetCmd.Flags().StringSlice("keywords", nil, "role keywords matched against title and description")
	prefsSetCmd.Flags().StringSlice("locations", nil, "preferred locations")
	prefsSetCmd.Flags().StringSlice("modes", nil, "preferred work modes: Remote, Hybrid, Onsite")
	prefsSetCmd.Flags().String("experience", "", "experience level: Fresher, 0-1, 1-3 or 3-5")
	prefsSetCmd.Flags().StringSlice("skills", nil, "skills")
	prefsSetCmd.Flags().Int("min-score", preferences.DefaultMinMatchScore, "minimum match score for --only-matches and digest")
}

func prefsShow() {
	s := openSession(sessionOptions{})
	defer s.Close()

	if s.profile == nil {
		s.logger.Info("no preferences set", zap.String("hint", "use the 'prefs set' command"))
		return
	}

	pretty, err := json.MarshalIndent(s.profile, "", "  ")
	if err != nil {
		s.logger.Fatal("encoding preferences", zap.Error(err))
	}
	fmt.Println(string(pretty))
}

func prefsSet(cmd *cobra.Command) {
	s := openSession(sessionOptions{})
	defer s.Close()

	current := preferences.Default()
	if s.profile != nil {
		current = s.profile
	}
	raw := current.ToMap()

	changed := 0
	for flag, field := range prefsFlags {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		changed++

		switch flag {
		case "experience":
			raw[field], _ = cmd.Flags().GetString(flag)
		case "min-score":
			raw[field], _ = cmd.Flags().GetInt(flag)
		default:
			raw[field], _ = cmd.Flags().GetStringSlice(flag)
		}
	}

	if changed == 0 && s.profile != nil {
		s.logger.Info("nothing to change")
		return
	}

	profile, err := preferences.Decode(raw)
	if err != nil {
		s.logger.Warn("some values were dropped", zap.Error(err))
	}

	if err := preferences.Save(s.ctx, s.store, profile); err != nil {
		s.logger.Fatal("saving preferences", zap.Error(err))
	}

	s.logger.Info("preferences saved",
		zap.Strings("role_keywords", profile.RoleKeywords),
		zap.Strings("skills", profile.Skills),
		zap.Int("minimum_match_score", profile.Threshold()),
	)
	if profile.IsEmpty() {
		s.logger.Warn("the profile is empty, every job will score 0")
	}
}

func prefsClear() {
	s := openSession(sessionOptions{})
	defer s.Close()

	if err := preferences.Clear(s.ctx, s.store); err != nil {
		s.logger.Fatal("clearing preferences", zap.Error(err))
	}
	s.logger.Info("preferences cleared")
}
