package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/murtezataher/AgenticAIFYP/internal/logger"
	"github.com/murtezataher/AgenticAIFYP/internal/models"
	"github.com/murtezataher/AgenticAIFYP/internal/recruiter"
	"github.com/murtezataher/AgenticAIFYP/internal/services"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

const (
	ActionSubmit    = "Submit resumes"
	ActionRanking   = "Show candidate ranking"
	ActionInterview = "Interview a candidate"
	ActionShortlist = "Show final shortlist"
	ActionExit      = "Exit"
)

var actions = []string{ActionSubmit, ActionRanking, ActionInterview, ActionShortlist, ActionExit}

var errExit = errors.New("exit requested")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Italic(true)
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run an interactive recruiting session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSession(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

// prompter asks the operator for choices and free text.
type prompter interface {
	Select(label string, items []string) (int, error)
	Input(label string) (string, error)
}

type terminalPrompter struct{}

func (terminalPrompter) Select(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}
	i, _, err := prompt.Run()
	return i, err
}

func (terminalPrompter) Input(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
	}
	return prompt.Run()
}

type cliSession struct {
	id        string
	state     *workflow.State
	recruiter *recruiter.Recruiter
	prompt    prompter
	out       io.Writer
	logger    *zap.Logger
}

func newCLISession(rec *recruiter.Recruiter, prompt prompter, out io.Writer, log *zap.Logger) *cliSession {
	id := uuid.NewString()
	return &cliSession{
		id:        id,
		state:     rec.NewState(),
		recruiter: rec,
		prompt:    prompt,
		out:       out,
		logger:    logger.ForSession(log, id),
	}
}

func runSession(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := loadConfig()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer zlog.Sync()

	rec, err := recruiter.FromConfig(ctx, cfg, zlog)
	if err != nil {
		return err
	}

	return newCLISession(rec, terminalPrompter{}, os.Stdout, zlog).run(ctx)
}

// run drives the menu until the operator exits or input ends.
func (s *cliSession) run(ctx context.Context) error {
	fmt.Fprintln(s.out, titleStyle.Render("🤖 Agentic AI for Candidate Selection & Interview"))

	for {
		err := s.step(ctx)
		switch {
		case err == nil:
		case errors.Is(err, errExit), errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
			return nil
		default:
			fmt.Fprintln(s.out, noticeStyle.Render(err.Error()))
		}
	}
}

func (s *cliSession) step(ctx context.Context) error {
	i, err := s.prompt.Select("What next?", actions)
	if err != nil {
		return err
	}

	switch actions[i] {
	case ActionSubmit:
		return s.submit(ctx)
	case ActionRanking:
		job, err := s.selectJob()
		if err != nil {
			return err
		}
		printRanking(s.out, job, s.state.Rank(job.ID))
	case ActionInterview:
		return s.interview()
	case ActionShortlist:
		printShortlists(s.out, s.state.Shortlists(workflow.DefaultShortlistSize))
	case ActionExit:
		return errExit
	}

	return nil
}

func (s *cliSession) selectJob() (models.JobPosting, error) {
	jobs := s.state.Jobs()
	names := make([]string, 0, len(jobs))
	for _, job := range jobs {
		names = append(names, job.ID)
	}

	i, err := s.prompt.Select("Choose a job", names)
	if err != nil {
		return models.JobPosting{}, err
	}

	job := jobs[i]
	fmt.Fprintln(s.out, labelStyle.Render("Job Description: ")+valueStyle.Render(job.Description))
	return job, nil
}

func (s *cliSession) submit(ctx context.Context) error {
	job, err := s.selectJob()
	if err != nil {
		return err
	}

	input, err := s.prompt.Input("Resume files (comma separated)")
	if err != nil {
		return err
	}

	var uploads []workflow.Upload
	for _, path := range strings.Split(input, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if err := services.ValidateExtension(path); err != nil {
			fmt.Fprintln(s.out, noticeStyle.Render(fmt.Sprintf("%s skipped: %v", path, err)))
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(s.out, noticeStyle.Render(fmt.Sprintf("%s skipped: %v", path, err)))
			continue
		}
		uploads = append(uploads, workflow.Upload{Filename: filepath.Base(path), Data: data})
	}

	if len(uploads) == 0 {
		return errors.New("no resumes to submit")
	}

	ranking, err := s.state.Submit(ctx, job.ID, uploads)
	if err != nil {
		return err
	}

	printRanking(s.out, job, ranking)
	return nil
}

func (s *cliSession) interview() error {
	pending := s.state.ListPending()
	if len(pending) == 0 {
		fmt.Fprintln(s.out, noticeStyle.Render("✅ All applications have been interviewed."))
		return nil
	}

	options := make([]string, 0, len(pending))
	for _, app := range pending {
		options = append(options, fmt.Sprintf("%s (%s)", app.Candidate, app.JobID))
	}

	i, err := s.prompt.Select("Select an application to interview", options)
	if err != nil {
		return err
	}

	app := pending[i]
	question, err := s.state.StartInterview(app.Candidate, app.JobID)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, titleStyle.Render(fmt.Sprintf("🗣️ Interviewing %s for %s", app.Candidate, app.JobID)))

	for {
		answer, err := s.prompt.Input(fmt.Sprintf("Q%d/%d: %s", question.Number, question.Total, question.Text))
		if err != nil {
			s.state.AbandonInterview()
			fmt.Fprintln(s.out, noticeStyle.Render("Interview abandoned, the application stays pending."))
			return nil
		}

		outcome := s.state.SubmitAnswer(question.Number, answer)
		switch outcome.Status {
		case workflow.AnswerNextQuestion:
			question = outcome.Question
		case workflow.AnswerCompleted:
			s.printCompletion(outcome.Result)
			return nil
		default:
			return errors.New("no active question")
		}
	}
}

func (s *cliSession) printCompletion(result models.Result) {
	fmt.Fprintln(s.out, titleStyle.Render(fmt.Sprintf("✅ Interview Complete for %s (%s)!", result.Candidate, result.JobID)))
	fmt.Fprintln(s.out, labelStyle.Render("AI Feedback: ")+valueStyle.Render(result.Feedback))
	fmt.Fprintln(s.out, labelStyle.Render("Interview Score: ")+valueStyle.Render(fmt.Sprint(result.Score)))

	if err := s.recruiter.ArchiveResult(s.id, result); err != nil {
		s.logger.Warn("interview result kept in session only", logger.ApplicationFields(result.Candidate, result.JobID)...)
	}
}

func printRanking(out io.Writer, job models.JobPosting, ranking []models.Application) {
	fmt.Fprintln(out, titleStyle.Render("📊 Candidate Ranking for "+job.ID))
	if len(ranking) == 0 {
		fmt.Fprintln(out, noticeStyle.Render("No applications yet for "+job.ID+"."))
		return
	}

	for i, app := range ranking {
		fmt.Fprintf(out, "%s %s\n   %s\n",
			labelStyle.Render(fmt.Sprintf("%d. %s", i+1, app.Candidate)),
			valueStyle.Render(fmt.Sprintf("Job-Fit Score: %.0f", app.FitScore)),
			valueStyle.Render(logger.TruncateForLog(app.Preview, 80)),
		)
	}
}

func printShortlists(out io.Writer, shortlists []workflow.Shortlist) {
	if len(shortlists) == 0 {
		fmt.Fprintln(out, noticeStyle.Render("Complete at least one interview to see shortlist."))
		return
	}

	for _, shortlist := range shortlists {
		fmt.Fprintln(out, titleStyle.Render("🏆 Top Candidates for "+shortlist.JobID))
		for i, result := range shortlist.Candidates {
			fmt.Fprintf(out, "%s %s %s\n",
				labelStyle.Render(fmt.Sprintf("%d. %s", i+1, result.Candidate)),
				valueStyle.Render(fmt.Sprintf("Interview Score: %d", result.Score)),
				valueStyle.Render(result.Feedback),
			)
		}
	}

	fmt.Fprintln(out, noticeStyle.Render("These candidates are applicable for final human interviews."))
}
