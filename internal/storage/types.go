package storage

// Transcript представляет выгрузку всех вопросов и ответов одной сессии.
// Используется для ручного экспорта, когда итоговая аналитика недоступна
type Transcript struct {
	SessionID string  `json:"session_id"`
	Topic     string  `json:"topic"`
	Style     string  `json:"style"`
	StartedAt string  `json:"started_at"`
	Entries   []Entry `json:"entries"`
}

// Entry представляет одну пару вопрос/ответ в выгрузке
type Entry struct {
	QuestionNumber int         `json:"question_number"`
	Question       string      `json:"question"`
	Answer         string      `json:"answer"`
	AskedAt        string      `json:"asked_at"`
	AnsweredAt     string      `json:"answered_at"`
	Analysis       interface{} `json:"analysis,omitempty"`
}
