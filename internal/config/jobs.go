package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

type jobsFile struct {
	Jobs []models.JobPosting `yaml:"jobs"`
}

// LoadJobs reads the job catalog from a YAML file. An empty path selects
// the built-in catalog.
func LoadJobs(path string) ([]models.JobPosting, error) {
	if path == "" {
		return workflow.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}

	return ParseJobs(data)
}

func ParseJobs(data []byte) ([]models.JobPosting, error) {
	var file jobsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse jobs file: %w", err)
	}

	if len(file.Jobs) == 0 {
		return nil, fmt.Errorf("jobs file defines no jobs")
	}

	seen := make(map[string]bool, len(file.Jobs))
	for i := range file.Jobs {
		job := &file.Jobs[i]
		job.ID = strings.TrimSpace(job.ID)
		if job.ID == "" {
			return nil, fmt.Errorf("job %d has no name", i+1)
		}
		if seen[job.ID] {
			return nil, fmt.Errorf("job %q defined twice", job.ID)
		}
		seen[job.ID] = true
	}

	return file.Jobs, nil
}
