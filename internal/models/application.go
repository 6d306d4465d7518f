package models

// Application is one candidate document submitted for one job.
// (Candidate, JobID) is unique inside a session.
type Application struct {
	Candidate   string  `json:"candidate"`
	JobID       string  `json:"job_id"`
	Text        string  `json:"-"`
	Preview     string  `json:"preview"`
	FitScore    float64 `json:"fit_score"`
	Interviewed bool    `json:"interviewed"`
}
