package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"interview-session-client/internal/config"
	"interview-session-client/internal/wire"
)

// Ошибки удаленного сервиса. Все три для получения вопроса обрабатываются
// одинаково (переход в fallback режим), но различимы через errors.Is
// для логирования
var (
	ErrRemoteUnavailable = errors.New("удаленный сервис недоступен")
	ErrRemoteTimeout     = errors.New("превышено время ожидания удаленного сервиса")
	ErrRemoteProtocol    = errors.New("неожиданный формат ответа удаленного сервиса")
)

// Client представляет клиент удаленного сервиса генерации вопросов
type Client struct {
	baseURL string
	client  *http.Client
}

// Exchange представляет одну пару вопрос/ответ для передачи в сервис
type Exchange struct {
	QuestionNumber int
	Question       string
	Answer         string
}

// AnalyticsData представляет непрозрачный результат аналитики интервью.
// Клиент не интерпретирует его содержимое
type AnalyticsData map[string]interface{}

// NewClient создает новый клиент удаленного сервиса
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateQuestion запрашивает следующий вопрос интервью.
// questionNumber нумеруется с единицы
func (c *Client) GenerateQuestion(cfg *config.InterviewConfig, previousQuestions []string, previousResponses []Exchange, questionNumber int) (string, error) {
	if questionNumber < 1 {
		return "", fmt.Errorf("questionNumber должен быть не меньше 1, получен %d", questionNumber)
	}

	questions := make([]interface{}, len(previousQuestions))
	for i, q := range previousQuestions {
		questions[i] = q
	}

	payload := map[string]interface{}{
		"config":            cfg.AsPayload(),
		"previousQuestions": questions,
		"previousResponses": exchangesToPayload(previousResponses),
		"questionNumber":    questionNumber,
	}

	result, err := c.post("/generate-question", payload)
	if err != nil {
		return "", err
	}

	return stringField(result, "question")
}

// GenerateFollowUp запрашивает уточняющий вопрос к предыдущему ответу
func (c *Client) GenerateFollowUp(question, answer string, cfg *config.InterviewConfig) (string, error) {
	payload := map[string]interface{}{
		"question": question,
		"response": answer,
		"config":   cfg.AsPayload(),
	}

	result, err := c.post("/generate-followup", payload)
	if err != nil {
		return "", err
	}

	return stringField(result, "followUp")
}

// AnalyzeResponse запрашивает анализ одного ответа. Вызывается в режиме
// best-effort: ошибка означает "анализ недоступен", а не сбой сессии
func (c *Client) AnalyzeResponse(question, answer string, cfg *config.InterviewConfig) (interface{}, error) {
	payload := map[string]interface{}{
		"question": question,
		"response": answer,
		"config":   cfg.AsPayload(),
	}

	result, err := c.post("/analyze-response", payload)
	if err != nil {
		return nil, err
	}

	analysis, ok := result["analysis"]
	if !ok {
		return nil, fmt.Errorf("%w: отсутствует поле analysis", ErrRemoteProtocol)
	}
	return analysis, nil
}

// GenerateAnalytics запрашивает итоговую аналитику по всем собранным ответам.
// Вызывается один раз при завершении сессии
func (c *Client) GenerateAnalytics(responses []Exchange, cfg *config.InterviewConfig) (AnalyticsData, error) {
	payload := map[string]interface{}{
		"responses": exchangesToPayload(responses),
		"config":    cfg.AsPayload(),
	}

	result, err := c.post("/generate-analytics", payload)
	if err != nil {
		return nil, err
	}

	analytics, ok := result["analytics"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: отсутствует поле analytics", ErrRemoteProtocol)
	}
	return AnalyticsData(analytics), nil
}

// CheckHealth проверяет доступность удаленного сервиса. Никогда не возвращает
// ошибку: любой сбой означает false. Используется только как информационный
// сигнал, переход в fallback режим происходит по фактической ошибке запроса
func (c *Client) CheckHealth() bool {
	resp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return false
	}

	tree, ok := wire.ToLocalFormat(raw).(map[string]interface{})
	if !ok {
		return false
	}

	status, ok := tree["status"].(string)
	return ok && status == "ok"
}

// post отправляет запрос через кодек сетевой границы и возвращает ответ
// в локальном формате
func (c *Client) post(path string, payload map[string]interface{}) (map[string]interface{}, error) {
	jsonBody, err := json.Marshal(wire.ToWireFormat(payload))
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrRemoteTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка чтения ответа: %v", ErrRemoteUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRemoteUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrRemoteProtocol, resp.StatusCode, string(body))
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: ошибка парсинга JSON: %v", ErrRemoteProtocol, err)
	}

	tree, ok := wire.ToLocalFormat(raw).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: ответ не является объектом", ErrRemoteProtocol)
	}

	return tree, nil
}

// stringField извлекает обязательное строковое поле из ответа сервиса
func stringField(tree map[string]interface{}, field string) (string, error) {
	value, ok := tree[field].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: отсутствует поле %s", ErrRemoteProtocol, field)
	}
	return value, nil
}

func exchangesToPayload(exchanges []Exchange) []interface{} {
	out := make([]interface{}, len(exchanges))
	for i, e := range exchanges {
		out[i] = map[string]interface{}{
			"questionNumber": e.QuestionNumber,
			"question":       e.Question,
			"answer":         e.Answer,
		}
	}
	return out
}

// isTimeout отличает таймаут от прочих транспортных ошибок
func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
