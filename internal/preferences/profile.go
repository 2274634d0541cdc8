package preferences

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/job-tracker/internal/jobs"
)

const (
	DefaultMinMatchScore = 40
	MaxMatchScore        = 100
)

// Profile is the user's preference set used for scoring. A nil *Profile means
// no preferences were configured. Profiles built by Decode are normalised:
// list fields hold trimmed, non-empty, de-duplicated values, modes and the
// experience level are canonical, and MinMatchScore is set within [0, 100].
type Profile struct {
	RoleKeywords       []string        `json:"roleKeywords"`
	PreferredLocations []string        `json:"preferredLocations"`
	PreferredMode      []jobs.Mode     `json:"preferredMode"`
	ExperienceLevel    jobs.Experience `json:"experienceLevel"`
	Skills             []string        `json:"skills"`
	// MinMatchScore is nil when unset. Use Threshold to read it.
	MinMatchScore      *int            `json:"minMatchScore,omitempty"`
}

// rawProfile mirrors Profile with every field optional.
type rawProfile struct {
	RoleKeywords       []string `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations"`
	PreferredMode      []string `json:"preferredMode"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             []string `json:"skills"`
	MinMatchScore      *int     `json:"minMatchScore"`
}

// Default returns an empty profile with the default threshold.
func Default() *Profile {
	return &Profile{MinMatchScore: MinScore(DefaultMinMatchScore)}
}

// MinScore returns a threshold value for Profile.MinMatchScore.
func MinScore(score int) *int {
	return &score
}

// Threshold is the minimum match score, DefaultMinMatchScore when unset.
func (p *Profile) Threshold() int {
	if p == nil || p.MinMatchScore == nil {
		return DefaultMinMatchScore
	}
	return clampScore(*p.MinMatchScore)
}

// Decode builds a normalised profile from loosely typed data such as a stored
// JSON document or command line values. Missing or null fields are treated as
// empty. List fields also accept comma separated strings.
//
// The returned profile is always usable. A non-nil error lists the fields that
// could not be decoded, which are left empty, and the unknown modes or
// experience level that were dropped.
func Decode(raw map[string]any) (*Profile, error) {
	var data rawProfile

	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           &data,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return Default(), fmt.Errorf("create profile decoder: %w", err)
	}

	var decodeErr error
	if err := decoder.Decode(raw); err != nil {
		decodeErr = fmt.Errorf("decode profile: %w", err)
	}

	profile := &Profile{
		RoleKeywords:       cleanList(data.RoleKeywords),
		PreferredLocations: cleanList(data.PreferredLocations),
		ExperienceLevel:    canonicalExperience(data.ExperienceLevel),
		Skills:             cleanList(data.Skills),
		MinMatchScore:      MinScore(DefaultMinMatchScore),
	}

	var dropped []string
	if level := strings.TrimSpace(data.ExperienceLevel); level != "" && profile.ExperienceLevel == "" {
		dropped = append(dropped, fmt.Sprintf("experienceLevel %q", level))
	}

	for _, value := range cleanList(data.PreferredMode) {
		mode, ok := canonicalMode(value)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("preferredMode %q", value))
			continue
		}
		if !profile.HasMode(mode) {
			profile.PreferredMode = append(profile.PreferredMode, mode)
		}
	}

	if data.MinMatchScore != nil {
		profile.MinMatchScore = MinScore(clampScore(*data.MinMatchScore))
	}

	if len(dropped) > 0 {
		decodeErr = errors.Join(decodeErr, fmt.Errorf("unknown values dropped: %s", strings.Join(dropped, ", ")))
	}

	return profile, decodeErr
}

// ToMap converts the profile back into loosely typed data accepted by Decode.
func (p *Profile) ToMap() map[string]any {
	modes := make([]string, 0, len(p.PreferredMode))
	for _, mode := range p.PreferredMode {
		modes = append(modes, string(mode))
	}

	return map[string]any{
		"roleKeywords":       append([]string(nil), p.RoleKeywords...),
		"preferredLocations": append([]string(nil), p.PreferredLocations...),
		"preferredMode":      modes,
		"experienceLevel":    string(p.ExperienceLevel),
		"skills":             append([]string(nil), p.Skills...),
		"minMatchScore":      p.Threshold(),
	}
}

func (p *Profile) HasMode(mode jobs.Mode) bool {
	for _, m := range p.PreferredMode {
		if m == mode {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no scoring preference is set.
func (p *Profile) IsEmpty() bool {
	return len(p.RoleKeywords) == 0 &&
		len(p.PreferredLocations) == 0 &&
		len(p.PreferredMode) == 0 &&
		p.ExperienceLevel == "" &&
		len(p.Skills) == 0
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		key := strings.ToLower(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, value)
	}
	return out
}

func canonicalMode(value string) (jobs.Mode, bool) {
	for _, mode := range jobs.Modes {
		if strings.EqualFold(value, string(mode)) {
			return mode, true
		}
	}
	return "", false
}

// canonicalExperience returns "" for blank or unknown levels.
func canonicalExperience(value string) jobs.Experience {
	value = strings.TrimSpace(value)
	for _, level := range jobs.Experiences {
		if strings.EqualFold(value, string(level)) {
			return level
		}
	}
	return ""
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxMatchScore {
		return MaxMatchScore
	}
	return score
}
