package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

const (
	JobIDField         = "ID"
	JobModeField       = "Mode"
	JobExperienceField = "Experience"
	JobSourceField     = "Source"
)

type Mode string

const (
	ModeRemote Mode = "Remote"
	ModeHybrid Mode = "Hybrid"
	ModeOnsite Mode = "Onsite"
)

// Modes lists every known work mode.
var Modes = []Mode{ModeRemote, ModeHybrid, ModeOnsite}

// Valid reports whether m is one of the known work modes.
func (m Mode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

type Experience string

const (
	ExperienceFresher Experience = "Fresher"
	ExperienceJunior  Experience = "0-1"
	ExperienceMid     Experience = "1-3"
	ExperienceSenior  Experience = "3-5"
)

var Experiences = []Experience{ExperienceFresher, ExperienceJunior, ExperienceMid, ExperienceSenior}

type Source string

const (
	SourceLinkedIn Source = "LinkedIn"
	SourceNaukri   Source = "Naukri"
	SourceIndeed   Source = "Indeed"
)

var Sources = []Source{SourceLinkedIn, SourceNaukri, SourceIndeed}

// Job is a single posting from the dataset. Jobs are shared between
// collections by pointer and must be treated as read-only.
type Job struct {
	ID            int        `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Company       string     `json:"company" yaml:"company"`
	Location      string     `json:"location" yaml:"location"`
	Mode          Mode       `json:"mode" yaml:"mode"`
	Experience    Experience `json:"experience" yaml:"experience"`
	Source        Source     `json:"source" yaml:"source"`
	PostedDaysAgo int        `json:"postedDaysAgo" yaml:"postedDaysAgo"`
	SalaryRange   string     `json:"salaryRange" yaml:"salaryRange"`
	Description   string     `json:"description" yaml:"description"`
	Skills        []string   `json:"skills" yaml:"skills"`
	ApplyURL      string     `json:"applyUrl" yaml:"applyUrl"`
}

type Jobs struct {
	Items []*Job `json:"items" yaml:"items"`
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return strconv.Itoa(j.ID)
	case JobModeField:
		return string(j.Mode)
	case JobExperienceField:
		return string(j.Experience)
	case JobSourceField:
		return string(j.Source)

	default:
		return ""
	}
}

// FormatPostedDate renders the posting age the way job cards show it.
func FormatPostedDate(daysAgo int) string {
	switch {
	case daysAgo <= 0:
		return "Today"
	case daysAgo == 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", daysAgo)
	}
}

func (v *Jobs) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

func (v *Jobs) FindByID(id int) *Job {
	for _, job := range v.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func (v *Jobs) IDs() []int {
	ids := make([]int, 0, v.Len())
	for _, job := range v.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

// ReportByCompany groups a short summary of every job by its company.
func (v *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range v.Items {
		report[job.Company] = append(report[job.Company], map[string]string{
			"id":         strconv.Itoa(job.ID),
			"title":      job.Title,
			"location":   job.Location,
			"mode":       string(job.Mode),
			"experience": string(job.Experience),
			"salary":     job.SalaryRange,
			"posted":     FormatPostedDate(job.PostedDaysAgo),
			"url":        job.ApplyURL,
		})
	}
	return report
}

func (v *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
