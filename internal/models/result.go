package models

import (
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of a completed interview.
type Result struct {
	Candidate string   `json:"candidate"`
	JobID     string   `json:"job_id"`
	Score     int      `json:"score"`
	Feedback  string   `json:"feedback"`
	Answers   []string `json:"answers,omitempty"`
}

// ArchivedResult is the persisted copy of a Result.
type ArchivedResult struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID string    `gorm:"type:text;index" json:"session_id"`
	Candidate string    `gorm:"type:text;not null" json:"candidate"`
	JobID     string    `gorm:"type:text;not null;index" json:"job_id"`
	Score     int       `gorm:"not null" json:"score"`
	Feedback  string    `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ArchivedResult) TableName() string {
	return "interview_results"
}
