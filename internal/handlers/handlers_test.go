package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
	"github.com/murtezataher/AgenticAIFYP/internal/recruiter"
	"github.com/murtezataher/AgenticAIFYP/internal/services"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

type memoryArchive struct {
	stored []models.ArchivedResult
}

func (m *memoryArchive) Create(result *models.ArchivedResult) error {
	m.stored = append(m.stored, *result)
	return nil
}

func (m *memoryArchive) FindByJob(jobID string, limit int) ([]models.ArchivedResult, error) {
	var found []models.ArchivedResult
	for _, r := range m.stored {
		if r.JobID == jobID && (limit <= 0 || len(found) < limit) {
			found = append(found, r)
		}
	}
	return found, nil
}

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T, opts ...recruiter.Option) *testServer {
	t.Helper()

	rec := recruiter.New(
		workflow.DefaultCatalog(),
		services.NewDocumentExtractor(nil),
		nil,
		append([]recruiter.Option{recruiter.WithSeed(5)}, opts...)...,
	)

	app := fiber.New()
	RegisterRoutes(app.Group("/api/v1"), RouteConfig{
		Registry:  workflow.NewRegistry(rec.NewState, nil),
		Recruiter: rec,
		Storage:   services.NewStorageService(t.TempDir(), 1<<20),
	})

	return &testServer{t: t, app: app}
}

func (s *testServer) do(req *http.Request) (int, map[string]any) {
	s.t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)

	body := map[string]any{}
	if len(raw) > 0 {
		require.NoError(s.t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body
}

func (s *testServer) json(method, path string, payload any) (int, map[string]any) {
	s.t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(s.t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *testServer) submit(sessionID, jobID string, files map[string]string) (int, map[string]any) {
	s.t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if jobID != "" {
		require.NoError(s.t, writer.WriteField("job", jobID))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(s.t, err)
		_, err = part.Write([]byte(content))
		require.NoError(s.t, err)
	}
	require.NoError(s.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/applications", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return s.do(req)
}

func (s *testServer) createSession() string {
	s.t.Helper()

	status, body := s.json(http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(s.t, http.StatusCreated, status)
	id, _ := body["id"].(string)
	require.NotEmpty(s.t, id)
	return id
}

func TestListJobs(t *testing.T) {
	s := newTestServer(t)

	status, body := s.json(http.MethodGet, "/api/v1/jobs", nil)
	require.Equal(t, http.StatusOK, status)

	jobs := body["jobs"].([]any)
	require.Len(t, jobs, 3)
	assert.Equal(t, "Software Developer", jobs[0].(map[string]any)["id"])
}

func TestRecruitingFlow(t *testing.T) {
	s := newTestServer(t)
	sid := s.createSession()
	base := "/api/v1/sessions/" + sid

	status, body := s.submit(sid, "Data Scientist", map[string]string{
		"alice.txt": "Data scientist: Python, SQL, machine learning.",
		"bob.txt":   "zzz",
	})
	require.Equal(t, http.StatusCreated, status, body)
	candidates := body["candidates"].([]any)
	require.Len(t, candidates, 2)
	assert.Equal(t, "alice", candidates[0].(map[string]any)["candidate"])

	status, body = s.json(http.MethodGet, base+"/applications?job=Data%20Scientist", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["candidates"], 2)

	status, body = s.json(http.MethodGet, base+"/applications/pending", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["applications"], 2)

	status, body = s.json(http.MethodPost, base+"/interview", models.StartInterviewRequest{Candidate: "alice", JobID: "Data Scientist"})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, float64(1), body["number"])
	assert.Equal(t, float64(3), body["total"])

	status, body = s.json(http.MethodPost, base+"/interview/answers", models.AnswerRequest{Question: 2, Answer: "early"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "no_active_question", body["status"])

	status, body = s.json(http.MethodPost, base+"/interview/answers", models.AnswerRequest{Question: 1, Answer: "labels"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "next_question", body["status"])

	status, body = s.json(http.MethodGet, base+"/interview", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["number"])

	s.json(http.MethodPost, base+"/interview/answers", models.AnswerRequest{Question: 2, Answer: ""})
	status, body = s.json(http.MethodPost, base+"/interview/answers", models.AnswerRequest{Question: 3, Answer: "tradeoff"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", body["status"])
	result := body["result"].(map[string]any)
	assert.Equal(t, "alice", result["candidate"])
	assert.GreaterOrEqual(t, result["score"].(float64), float64(60))

	status, _ = s.json(http.MethodGet, base+"/interview", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.json(http.MethodGet, base+"/applications/pending", nil)
	require.Equal(t, http.StatusOK, status)
	pending := body["applications"].([]any)
	require.Len(t, pending, 1)
	assert.Equal(t, "bob", pending[0].(map[string]any)["candidate"])

	status, body = s.json(http.MethodGet, base+"/shortlist?job=Data%20Scientist", nil)
	require.Equal(t, http.StatusOK, status)
	shortlist := body["candidates"].([]any)
	require.Len(t, shortlist, 1)
	assert.Equal(t, "alice", shortlist[0].(map[string]any)["name"])

	status, body = s.json(http.MethodGet, base+"/shortlist", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["shortlists"], 1)

	status, _ = s.json(http.MethodDelete, "/api/v1/sessions/"+sid, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = s.json(http.MethodGet, base+"/applications/pending", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestServer(t)
	first, second := s.createSession(), s.createSession()

	status, _ := s.submit(first, "Network Engineer", map[string]string{"nina.txt": "tcp/ip"})
	require.Equal(t, http.StatusCreated, status)

	_, body := s.json(http.MethodGet, "/api/v1/sessions/"+second+"/applications/pending", nil)
	assert.Empty(t, body["applications"])
}

func TestSubmitValidation(t *testing.T) {
	s := newTestServer(t)
	sid := s.createSession()

	status, _ := s.submit("missing", "Data Scientist", map[string]string{"a.txt": "x"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.submit(sid, "", map[string]string{"a.txt": "x"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.submit(sid, "Data Scientist", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := s.submit(sid, "Data Scientist", map[string]string{"a.docx": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "invalid file extension")

	status, _ = s.submit(sid, "Astronaut", map[string]string{"a.txt": "x"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.json(http.MethodGet, "/api/v1/sessions/"+sid+"/applications?job=Astronaut", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSubmitIsIdempotentOverHTTP(t *testing.T) {
	s := newTestServer(t)
	sid := s.createSession()

	files := map[string]string{"alice.txt": "python"}
	status, first := s.submit(sid, "Data Scientist", files)
	require.Equal(t, http.StatusCreated, status)
	status, second := s.submit(sid, "Data Scientist", files)
	require.Equal(t, http.StatusCreated, status)

	assert.Equal(t, first, second)
}

func TestInterviewErrors(t *testing.T) {
	s := newTestServer(t)
	sid := s.createSession()
	base := "/api/v1/sessions/" + sid

	status, _ := s.json(http.MethodPost, base+"/interview", models.StartInterviewRequest{Candidate: "ghost", JobID: "Data Scientist"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.json(http.MethodPost, base+"/interview", models.StartInterviewRequest{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.json(http.MethodDelete, base+"/interview", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := s.json(http.MethodPost, base+"/interview/answers", models.AnswerRequest{Question: 1, Answer: "x"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "no_active_question", body["status"])

	s.submit(sid, "Data Scientist", map[string]string{"alice.txt": "x", "bob.txt": "y"})

	status, _ = s.json(http.MethodPost, base+"/interview", models.StartInterviewRequest{Candidate: "alice", JobID: "Data Scientist"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = s.json(http.MethodPost, base+"/interview", models.StartInterviewRequest{Candidate: "bob", JobID: "Data Scientist"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.json(http.MethodDelete, base+"/interview", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = s.json(http.MethodPost, base+"/interview", models.StartInterviewRequest{Candidate: "bob", JobID: "Data Scientist"})
	assert.Equal(t, http.StatusCreated, status)
}

func TestShortlistEmpty(t *testing.T) {
	s := newTestServer(t)
	sid := s.createSession()

	status, body := s.json(http.MethodGet, "/api/v1/sessions/"+sid+"/shortlist?job=Data%20Scientist", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["candidates"])

	status, body = s.json(http.MethodGet, "/api/v1/sessions/"+sid+"/shortlist", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["shortlists"])
}

func TestArchive(t *testing.T) {
	s := newTestServer(t)
	status, _ := s.json(http.MethodGet, "/api/v1/archive/shortlist?job=Data%20Scientist", nil)
	assert.Equal(t, http.StatusNotFound, status)

	archive := &memoryArchive{}
	s = newTestServer(t, recruiter.WithArchive(archive))
	sid := s.createSession()
	base := "/api/v1/sessions/" + sid

	s.submit(sid, "Network Engineer", map[string]string{"nina.txt": "routing"})
	s.json(http.MethodPost, base+"/interview", models.StartInterviewRequest{Candidate: "nina", JobID: "Network Engineer"})
	for i := 1; i <= 3; i++ {
		s.json(http.MethodPost, base+"/interview/answers", models.AnswerRequest{Question: i, Answer: "answer"})
	}

	require.Len(t, archive.stored, 1)
	assert.Equal(t, sid, archive.stored[0].SessionID)

	status, body := s.json(http.MethodGet, "/api/v1/archive/shortlist?job=Network%20Engineer", nil)
	require.Equal(t, http.StatusOK, status)
	candidates := body["candidates"].([]any)
	require.Len(t, candidates, 1)
	assert.Equal(t, "nina", candidates[0].(map[string]any)["name"])

	status, _ = s.json(http.MethodGet, "/api/v1/archive/shortlist", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
