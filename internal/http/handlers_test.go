package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pulsebot/internal/domain"
	"pulsebot/internal/repository"
	"pulsebot/internal/service"
)

type mockQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]domain.Question
	listOrder []string
	touched   []string
}

func newMockQuestionRepo(questions ...domain.Question) *mockQuestionRepo {
	repo := &mockQuestionRepo{questions: make(map[string]domain.Question)}
	for _, q := range questions {
		repo.questions[q.ID] = q
		repo.listOrder = append(repo.listOrder, q.ID)
	}
	return repo
}

func (m *mockQuestionRepo) Create(_ context.Context, question domain.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[question.ID] = question
	m.listOrder = append(m.listOrder, question.ID)
	return nil
}

func (m *mockQuestionRepo) GetByID(_ context.Context, id string) (domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return domain.Question{}, pgx.ErrNoRows
	}
	return q, nil
}

func (m *mockQuestionRepo) ListByType(_ context.Context, questionType string) ([]domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Question
	for _, id := range m.listOrder {
		if q := m.questions[id]; q.QuestionType == questionType {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuestionRepo) IncrementDefer(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	q.DeferCount++
	m.questions[id] = q
	return nil
}

func (m *mockQuestionRepo) MarkSkipped(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	q.Skipped = true
	m.questions[id] = q
	return nil
}

func (m *mockQuestionRepo) TouchLastUsed(_ context.Context, id string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched = append(m.touched, id)
	return nil
}

type mockResponseRepo struct {
	responses []domain.Response
	texts     []string
}

func (m *mockResponseRepo) Create(_ context.Context, response domain.Response) error {
	m.responses = append(m.responses, response)
	return nil
}

func (m *mockResponseRepo) ListByUserID(_ context.Context, _ string) ([]domain.Response, error) {
	return m.responses, nil
}

func (m *mockResponseRepo) ListTextsByUserID(_ context.Context, _ string) ([]string, error) {
	return m.texts, nil
}

type mockUserRepo struct {
	usersByID map[string]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{usersByID: make(map[string]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

func newTestRouter(t *testing.T, questions *mockQuestionRepo, responses *mockResponseRepo, limiter service.PromptRateLimiter) (*gin.Engine, *mockUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	selector := service.NewQuestionSelector(logger, questions, responses, nil, 5)
	responseSvc := service.NewResponseService(logger, questions, responses, service.NewSentimentClassifier())

	questionH := NewQuestionHandler(logger, selector, questions, limiter, nil)
	responseH := NewResponseHandler(logger, responseSvc, nil)
	userRepo := newMockUserRepo()
	userH := NewUserHandler(logger, userRepo)

	return NewRouter(logger, questionH, responseH, userH, nil), userRepo
}

var _ repository.QuestionRepository = (*mockQuestionRepo)(nil)
var _ repository.ResponseRepository = (*mockResponseRepo)(nil)
var _ repository.UserRepository = (*mockUserRepo)(nil)

func TestGetQuestionsReturnsSelection(t *testing.T) {
	questions := newMockQuestionRepo(
		domain.Question{ID: "q1", QuestionText: "how was your day", QuestionType: domain.QuestionTypeEmoji, DifficultyLevel: 1},
	)
	router, _ := newTestRouter(t, questions, &mockResponseRepo{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/questions/emoji?user_id=user-1", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Question   *domain.Question         `json:"question"`
		Candidates []service.RankedQuestion `json:"candidates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Question == nil || body.Question.ID != "q1" {
		t.Fatalf("expected q1 selected, got %+v", body.Question)
	}
	if len(body.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(body.Candidates))
	}
	if len(questions.touched) != 1 || questions.touched[0] != "q1" {
		t.Fatalf("expected last_used_at touch on q1, got %v", questions.touched)
	}
}

func TestGetQuestionsEmptyPoolIsOK(t *testing.T) {
	questions := newMockQuestionRepo(
		domain.Question{ID: "q1", QuestionType: domain.QuestionTypeComment, Skipped: true},
	)
	router, _ := newTestRouter(t, questions, &mockResponseRepo{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/questions/comment", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty pool, got %d", rec.Code)
	}
	var body struct {
		Question *domain.Question `json:"question"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Question != nil {
		t.Fatalf("expected null question, got %+v", body.Question)
	}
	if len(questions.touched) != 0 {
		t.Fatalf("empty selection must not touch last_used_at")
	}
}

func TestGetQuestionsInvalidType(t *testing.T) {
	router, _ := newTestRouter(t, newMockQuestionRepo(), &mockResponseRepo{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/questions/slider", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetQuestionsRateLimited(t *testing.T) {
	questions := newMockQuestionRepo(
		domain.Question{ID: "q1", QuestionType: domain.QuestionTypeComment},
	)
	router, _ := newTestRouter(t, questions, &mockResponseRepo{}, denyAllLimiter{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/questions/comment?user_id=user-1", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAddResponsePersistsWithSentiment(t *testing.T) {
	questions := newMockQuestionRepo(
		domain.Question{ID: "q1", QuestionType: domain.QuestionTypeComment},
	)
	responses := &mockResponseRepo{}
	router, _ := newTestRouter(t, questions, responses, nil)

	payload := map[string]interface{}{
		"question_id":   "q1",
		"user_id":       "user-1",
		"response_text": "this process is wonderful",
	}
	body, _ := json.Marshal(payload)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/responses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Response domain.Response `json:"response"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.Response.Sentiment != domain.SentimentPositive {
		t.Fatalf("expected Positive sentiment, got %q", out.Response.Sentiment)
	}
	if len(responses.responses) != 1 {
		t.Fatalf("expected 1 persisted response, got %d", len(responses.responses))
	}
}

func TestAddResponseValidation(t *testing.T) {
	questions := newMockQuestionRepo(
		domain.Question{ID: "q1", QuestionType: domain.QuestionTypeComment},
	)
	router, _ := newTestRouter(t, questions, &mockResponseRepo{}, nil)

	cases := []struct {
		name    string
		payload map[string]interface{}
		status  int
	}{
		{"empty payload", map[string]interface{}{"question_id": "q1"}, http.StatusBadRequest},
		{"emoji out of range", map[string]interface{}{"question_id": "q1", "response_emoji": 9}, http.StatusBadRequest},
		{"unknown question", map[string]interface{}{"question_id": "missing", "response_text": "x y"}, http.StatusNotFound},
		{"missing question id", map[string]interface{}{"response_text": "x y"}, http.StatusBadRequest},
	}
	for _, c := range cases {
		body, _ := json.Marshal(c.payload)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/responses", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		if rec.Code != c.status {
			t.Fatalf("%s: expected %d, got %d: %s", c.name, c.status, rec.Code, rec.Body.String())
		}
	}
}

func TestUpdateStateEndpoint(t *testing.T) {
	questions := newMockQuestionRepo(
		domain.Question{ID: "q1", QuestionType: domain.QuestionTypeComment},
	)
	router, _ := newTestRouter(t, questions, &mockResponseRepo{}, nil)

	do := func(payload map[string]interface{}) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/responses/update_state", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := do(map[string]interface{}{"question_id": "q1", "action": "defer"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for defer, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Status string `json:"status"`
		Action string `json:"action"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.Status != "success" || out.Action != "defer" {
		t.Fatalf("unexpected body: %+v", out)
	}
	q, _ := questions.GetByID(context.Background(), "q1")
	if q.DeferCount != 1 {
		t.Fatalf("expected defer_count=1, got %d", q.DeferCount)
	}

	if rec = do(map[string]interface{}{"question_id": "q1", "action": "skip"}); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for skip, got %d", rec.Code)
	}
	if rec = do(map[string]interface{}{"question_id": "q1", "action": "snooze"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", rec.Code)
	}
	if rec = do(map[string]interface{}{"question_id": "missing", "action": "defer"}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown question, got %d", rec.Code)
	}
}

func TestCreateUserEndpoint(t *testing.T) {
	router, userRepo := newTestRouter(t, newMockQuestionRepo(), &mockResponseRepo{}, nil)

	payload := map[string]interface{}{
		"employee_id":        "E123",
		"full_name":          "Ana Torres",
		"ads_id":             "atorres",
		"manager_id":         "M1",
		"manager_name":       "Luis Vega",
		"manager_email_hash": "hash-m",
		"department":         "Platform",
		"band":               "B2",
		"job_title":          "Engineer",
		"is_active":          true,
		"email_hash":         "hash-a",
	}
	body, _ := json.Marshal(payload)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(userRepo.usersByID) != 1 {
		t.Fatalf("expected 1 user created, got %d", len(userRepo.usersByID))
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(`{"employee_id":""}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid user payload, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t, newMockQuestionRepo(), &mockResponseRepo{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
