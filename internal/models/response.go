package models

type SessionResponse struct {
	ID string `json:"id"`
}

type RankingEntry struct {
	Candidate string  `json:"candidate"`
	FitScore  float64 `json:"fit_score"`
	Preview   string  `json:"preview"`
}

type RankingResponse struct {
	JobID      string         `json:"job_id"`
	Candidates []RankingEntry `json:"candidates"`
}

type PendingEntry struct {
	Candidate string `json:"candidate"`
	JobID     string `json:"job_id"`
}

type StartInterviewRequest struct {
	Candidate string `json:"candidate"`
	JobID     string `json:"job"`
}

type AnswerRequest struct {
	Question int    `json:"question"`
	Answer   string `json:"answer"`
}

type QuestionResponse struct {
	Candidate string `json:"candidate"`
	JobID     string `json:"job_id"`
	Number    int    `json:"number"`
	Total     int    `json:"total"`
	Text      string `json:"text"`
}

type AnswerResponse struct {
	Status   string            `json:"status"`
	Question *QuestionResponse `json:"question,omitempty"`
	Result   *Result           `json:"result,omitempty"`
}

type ShortlistEntry struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type ShortlistResponse struct {
	JobID      string           `json:"job_id"`
	Candidates []ShortlistEntry `json:"candidates"`
}
