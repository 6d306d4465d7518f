package models

// JobPosting is an entry of the job catalog. The catalog is fixed for the
// lifetime of the process.
type JobPosting struct {
	ID          string   `json:"id" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Questions   []string `json:"questions,omitempty" yaml:"questions"`
}
