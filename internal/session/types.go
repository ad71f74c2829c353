package session

import (
	"errors"
	"time"

	"interview-session-client/internal/api"
	"interview-session-client/internal/config"
)

// Phase представляет фазу жизненного цикла сессии.
// ENDED — терминальная фаза, из нее нет переходов
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseActive     Phase = "active"
	PhasePaused     Phase = "paused"
	PhaseEnded      Phase = "ended"
)

// Mode представляет источник вопросов. Переход ONLINE -> FALLBACK
// необратим в рамках одной сессии
type Mode string

const (
	ModeOnline   Mode = "online"
	ModeFallback Mode = "fallback"
)

// Question представляет выданный вопрос с порядковым номером внутри сессии
type Question struct {
	Index   int
	Text    string
	AskedAt time.Time
}

// InterviewResponse представляет одну пару вопрос/ответ. Последовательность
// ответов append-only, единственный писатель — оркестратор
type InterviewResponse struct {
	Index      int
	Question   string
	Answer     string
	AskedAt    time.Time
	AnsweredAt time.Time
	// Analysis прикрепляется асинхронно по завершении best-effort анализа
	// и не блокирует продвижение сессии
	Analysis interface{}
}

// Progress представляет прогресс сессии для отображения
type Progress struct {
	Current    int
	Total      int
	Percentage float64
}

var (
	// ErrInvalidState возвращается при вызове в неверной фазе или с
	// нарушением порядка вопрос/ответ. Никогда не повторяется автоматически
	ErrInvalidState = errors.New("недопустимое состояние сессии")

	// ErrNoMoreQuestions сигнализирует, что вопросы закончились. Это не сбой:
	// вызывающая сторона должна завершить сессию через End
	ErrNoMoreQuestions = errors.New("вопросы закончились")
)

// QuestionService описывает операции удаленного сервиса, которые нужны
// оркестратору. Реализуется api.Client
type QuestionService interface {
	GenerateQuestion(cfg *config.InterviewConfig, previousQuestions []string, previousResponses []api.Exchange, questionNumber int) (string, error)
	GenerateFollowUp(question, answer string, cfg *config.InterviewConfig) (string, error)
	AnalyzeResponse(question, answer string, cfg *config.InterviewConfig) (interface{}, error)
	GenerateAnalytics(responses []api.Exchange, cfg *config.InterviewConfig) (api.AnalyticsData, error)
	CheckHealth() bool
}

// QuestionBank описывает локальную базу вопросов. Реализуется fallback.Bank
type QuestionBank interface {
	Next(style config.Style, askedCount int) (string, bool)
}
