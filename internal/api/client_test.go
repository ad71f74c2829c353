package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-session-client/internal/config"
)

func testConfig() *config.InterviewConfig {
	return &config.InterviewConfig{
		Topic:           "Go разработка",
		Style:           config.StyleTechnical,
		ExperienceLevel: config.LevelSenior,
		CompanyName:     "Acme",
		DurationMinutes: 30,
		MaxQuestions:    5,
	}
}

func TestGenerateQuestionUsesWireFormat(t *testing.T) {
	var received map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-question", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"question": "Расскажите про горутины"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	question, err := client.GenerateQuestion(testConfig(), []string{"q1"}, []Exchange{
		{QuestionNumber: 1, Question: "q1", Answer: "a1"},
	}, 2)

	require.NoError(t, err)
	assert.Equal(t, "Расскажите про горутины", question)

	// Ключи на проводе должны быть в snake_case
	assert.Contains(t, received, "previous_questions")
	assert.Contains(t, received, "previous_responses")
	assert.Equal(t, float64(2), received["question_number"])

	cfg, ok := received["config"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "senior", cfg["experience_level"])
	assert.Equal(t, "Acme", cfg["company_name"])

	responses, ok := received["previous_responses"].([]interface{})
	require.True(t, ok)
	first, ok := responses[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), first["question_number"])
}

func TestGenerateQuestionRejectsZeroNumber(t *testing.T) {
	client := NewClient("http://localhost:1", time.Second)
	_, err := client.GenerateQuestion(testConfig(), nil, nil, 0)
	require.Error(t, err)
	// Ошибка программиста, не транспортная
	assert.False(t, errors.Is(err, ErrRemoteUnavailable))
}

func TestGenerateQuestionUnavailable(t *testing.T) {
	// Порт 1 закрыт: транспортная ошибка
	client := NewClient("http://127.0.0.1:1", time.Second)
	_, err := client.GenerateQuestion(testConfig(), nil, nil, 1)
	require.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestGenerateQuestionTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, `{"question": "поздно"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.GenerateQuestion(testConfig(), nil, nil, 1)
	require.ErrorIs(t, err, ErrRemoteTimeout)
}

func TestGenerateQuestionMissingField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"unexpected": true}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.GenerateQuestion(testConfig(), nil, nil, 1)
	require.ErrorIs(t, err, ErrRemoteProtocol)
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusBadGateway, ErrRemoteUnavailable},
		{http.StatusInternalServerError, ErrRemoteUnavailable},
		{http.StatusUnprocessableEntity, ErrRemoteProtocol},
		{http.StatusNotFound, ErrRemoteProtocol},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		client := NewClient(server.URL, time.Second)
		_, err := client.GenerateQuestion(testConfig(), nil, nil, 1)
		assert.ErrorIs(t, err, tc.want, "HTTP %d", tc.status)
		server.Close()
	}
}

func TestGenerateFollowUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-followup", r.URL.Path)
		io.WriteString(w, `{"follow_up": "А почему именно так?"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	followUp, err := client.GenerateFollowUp("вопрос", "ответ", testConfig())
	require.NoError(t, err)
	assert.Equal(t, "А почему именно так?", followUp)
}

func TestAnalyzeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze-response", r.URL.Path)
		io.WriteString(w, `{"analysis": {"clarity_score": 8, "key_points": ["конкретика"]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	analysis, err := client.AnalyzeResponse("вопрос", "ответ", testConfig())
	require.NoError(t, err)

	tree, ok := analysis.(map[string]interface{})
	require.True(t, ok)
	// Ключи анализа приходят уже в локальном формате
	assert.Equal(t, float64(8), tree["clarityScore"])
}

func TestGenerateAnalytics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-analytics", r.URL.Path)

		var received map[string]interface{}
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		assert.Contains(t, received, "responses")

		io.WriteString(w, `{"analytics": {"overall_score": 7.5}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	analytics, err := client.GenerateAnalytics([]Exchange{
		{QuestionNumber: 1, Question: "q", Answer: "a"},
	}, testConfig())
	require.NoError(t, err)
	assert.Equal(t, 7.5, analytics["overallScore"])
}

func TestCheckHealth(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		io.WriteString(w, `{"status": "ok"}`)
	}))
	defer healthy.Close()

	assert.True(t, NewClient(healthy.URL, time.Second).CheckHealth())

	degraded := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "degraded"}`)
	}))
	defer degraded.Close()

	assert.False(t, NewClient(degraded.URL, time.Second).CheckHealth())

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `не json`)
	}))
	defer broken.Close()

	assert.False(t, NewClient(broken.URL, time.Second).CheckHealth())

	// Недоступный сервис тоже сворачивается в false, без ошибки
	assert.False(t, NewClient("http://127.0.0.1:1", time.Second).CheckHealth())
}
