package jobs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads the job dataset. JSON is used unless the file has a
// .yaml or .yml extension. Both a bare list and an object with "items" are accepted.
func LoadFromFile(path string) (*Jobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []*Job
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		items, err = decodeYAML(data)
	default:
		items, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode dataset %q: %w", path, err)
	}

	jobs := &Jobs{Items: make([]*Job, 0, len(items))}
	seen := make(map[int]struct{}, len(items))
	for idx, job := range items {
		if job == nil {
			continue
		}
		if _, ok := seen[job.ID]; ok {
			return nil, fmt.Errorf("dataset %q: duplicate job id %d at position %d", path, job.ID, idx)
		}
		if job.PostedDaysAgo < 0 {
			return nil, fmt.Errorf("dataset %q: job %d has negative postedDaysAgo", path, job.ID)
		}
		seen[job.ID] = struct{}{}
		jobs.Items = append(jobs.Items, job)
	}

	return jobs, nil
}

func decodeJSON(data []byte) ([]*Job, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []*Job
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var wrapped Jobs
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Items, nil
}

func decodeYAML(data []byte) ([]*Job, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	if node.Content[0].Kind == yaml.SequenceNode {
		var items []*Job
		if err := node.Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var wrapped Jobs
	if err := node.Decode(&wrapped); err != nil {
		return nil, err
	}
	return wrapped.Items, nil
}
