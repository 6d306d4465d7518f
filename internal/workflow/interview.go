package workflow

import (
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyInterviewed  = errors.New("application already interviewed")
	ErrInterviewInProgress = errors.New("another interview is in progress")
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAsking
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseAsking:
		return "asking"
	case PhaseComplete:
		return "complete"
	default:
		return "idle"
	}
}

// Session is the interview currently running for one application.
// Index is 1-based and reaches len(Questions)+1 once every answer is in.
type Session struct {
	Candidate string
	JobID     string
	Questions []string
	Index     int
	Answers   []string
}

func (s *Session) Phase() Phase {
	if s == nil {
		return PhaseIdle
	}
	if s.Index > len(s.Questions) {
		return PhaseComplete
	}
	return PhaseAsking
}

func (s *Session) current() Question {
	return Question{
		Candidate: s.Candidate,
		JobID:     s.JobID,
		Number:    s.Index,
		Total:     len(s.Questions),
		Text:      s.Questions[s.Index-1],
	}
}

// Question is what the front end shows while an interview is asking.
type Question struct {
	Candidate string
	JobID     string
	Number    int
	Total     int
	Text      string
}

type AnswerStatus int

const (
	AnswerNoActiveQuestion AnswerStatus = iota
	AnswerNextQuestion
	AnswerCompleted
)

func (a AnswerStatus) String() string {
	switch a {
	case AnswerNextQuestion:
		return "next_question"
	case AnswerCompleted:
		return "completed"
	default:
		return "no_active_question"
	}
}

// AnswerOutcome reports what SubmitAnswer did. Question is set for
// AnswerNextQuestion, Result for AnswerCompleted.
type AnswerOutcome struct {
	Status   AnswerStatus
	Question Question
	Result   models.Result
}

// StartInterview opens a session for a pending application and returns the
// first question.
func (s *State) StartInterview(candidate, jobID string) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := s.findApplication(candidate, jobID)
	if app == nil {
		return Question{}, ErrApplicationNotFound
	}
	if app.Interviewed {
		return Question{}, ErrAlreadyInterviewed
	}
	if s.session != nil {
		return Question{}, ErrInterviewInProgress
	}

	s.session = &Session{
		Candidate: candidate,
		JobID:     jobID,
		Questions: Questions(s.catalog[jobID]),
		Index:     1,
	}

	s.logger.Info("interview started",
		zap.String("candidate", candidate),
		zap.String("job_id", jobID),
		zap.Int("questions", len(s.session.Questions)),
	)

	return s.session.current(), nil
}

// SubmitAnswer records the answer to question number. An answer for any
// other number than the one being asked, or with no interview running, is
// ignored and reported as AnswerNoActiveQuestion. Blank answers count.
func (s *State) SubmitAnswer(number int, text string) AnswerOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || number != s.session.Index {
		s.logger.Debug("answer ignored, no matching active question", zap.Int("question", number))
		return AnswerOutcome{Status: AnswerNoActiveQuestion}
	}

	s.session.Answers = append(s.session.Answers, text)
	s.session.Index++

	if s.session.Phase() == PhaseComplete {
		return AnswerOutcome{Status: AnswerCompleted, Result: s.complete()}
	}

	return AnswerOutcome{Status: AnswerNextQuestion, Question: s.session.current()}
}

// complete finalises the running session. Caller holds s.mu.
func (s *State) complete() models.Result {
	session := s.session

	result := models.Result{
		Candidate: session.Candidate,
		JobID:     session.JobID,
		Score:     60 + s.rng.IntN(41),
		Feedback:  FeedbackPool[s.rng.IntN(len(FeedbackPool))],
		Answers:   slices.Clone(session.Answers),
	}
	s.results = append(s.results, result)

	if app := s.findApplication(session.Candidate, session.JobID); app != nil {
		app.Interviewed = true
	}
	s.session = nil

	s.logger.Info("interview completed",
		zap.String("candidate", result.Candidate),
		zap.String("job_id", result.JobID),
		zap.Int("score", result.Score),
	)

	return cloneResult(result)
}

// CurrentQuestion returns the question being asked, if any.
func (s *State) CurrentQuestion() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Phase() != PhaseAsking {
		return Question{}, false
	}
	return s.session.current(), true
}

// Phase reports the interview phase of the session.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Phase()
}

// AbandonInterview drops the running interview without producing a
// result. The application stays pending.
func (s *State) AbandonInterview() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return false
	}

	s.logger.Info("interview abandoned",
		zap.String("candidate", s.session.Candidate),
		zap.String("job_id", s.session.JobID),
		zap.Int("answered", len(s.session.Answers)),
	)
	s.session = nil
	return true
}
