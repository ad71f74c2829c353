package session

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"interview-session-client/internal/api"
	"interview-session-client/internal/config"
	"interview-session-client/internal/metrics"
	"interview-session-client/internal/storage"
)

// Session представляет оркестратор одной сессии интервью. Один экземпляр
// обслуживает ровно одну сессию от Start до терминальной фазы ENDED
type Session struct {
	id      string
	cfg     config.InterviewConfig
	remote  QuestionService
	bank    QuestionBank
	metrics *metrics.Metrics

	mu            sync.RWMutex
	phase         Phase
	mode          Mode
	asked         []Question
	responses     []InterviewResponse
	current       *Question
	fetching      bool
	followUpsUsed int
	startedAt     time.Time
	analytics     api.AnalyticsData
}

// NewSession создает оркестратор сессии. Клиент и база вопросов передаются
// явно, никакого глобального состояния
func NewSession(cfg *config.InterviewConfig, remote QuestionService, bank QuestionBank, m *metrics.Metrics) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if remote == nil {
		return nil, fmt.Errorf("не задан клиент удаленного сервиса")
	}
	if bank == nil {
		return nil, fmt.Errorf("не задана локальная база вопросов")
	}
	if m == nil {
		m = metrics.NewMetrics()
	}

	return &Session{
		id:      uuid.New().String(),
		cfg:     *cfg,
		remote:  remote,
		bank:    bank,
		metrics: m,
		phase:   PhaseNotStarted,
		mode:    ModeOnline,
	}, nil
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// Start переводит сессию из NOT_STARTED в ACTIVE
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseNotStarted {
		return fmt.Errorf("%w: сессия уже запускалась (фаза %s)", ErrInvalidState, s.phase)
	}

	s.phase = PhaseActive
	s.startedAt = time.Now()
	s.metrics.IncrementSessionsStarted()
	return nil
}

// NextQuestion выдает следующий вопрос. В режиме ONLINE вопрос запрашивается
// у удаленного сервиса; любая его ошибка необратимо переводит сессию в режим
// FALLBACK и вопрос берется из локальной базы. Возвращает ErrNoMoreQuestions,
// когда источник исчерпан или достигнут лимит вопросов: вызывающая сторона
// должна завершить сессию через End, а не повторять вызов
func (s *Session) NextQuestion() (*Question, error) {
	s.mu.Lock()

	if s.phase != PhaseActive {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: вопрос можно запросить только в фазе ACTIVE (фаза %s)", ErrInvalidState, s.phase)
	}
	if s.current != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: предыдущий вопрос еще не отвечен", ErrInvalidState)
	}
	if s.fetching {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: запрос вопроса уже выполняется", ErrInvalidState)
	}
	if len(s.asked) >= s.cfg.MaxQuestions {
		s.mu.Unlock()
		return nil, ErrNoMoreQuestions
	}

	// Снимок состояния для запроса; удаленный вызов выполняется без блокировки
	s.fetching = true
	mode := s.mode
	number := len(s.asked) + 1
	previousQuestions := make([]string, len(s.asked))
	for i, q := range s.asked {
		previousQuestions[i] = q.Text
	}
	previousResponses := s.exchangesLocked()

	var lastExchange *api.Exchange
	if n := len(previousResponses); n > 0 {
		lastExchange = &previousResponses[n-1]
	}
	useFollowUp := mode == ModeOnline && lastExchange != nil && s.followUpsUsed < s.cfg.MaxFollowUps
	s.mu.Unlock()

	var text string
	var fromBank, isFollowUp bool
	var remoteErr error

	if mode == ModeOnline {
		if useFollowUp {
			text, remoteErr = s.remote.GenerateFollowUp(lastExchange.Question, lastExchange.Answer, &s.cfg)
			isFollowUp = remoteErr == nil
		} else {
			text, remoteErr = s.remote.GenerateQuestion(&s.cfg, previousQuestions, previousResponses, number)
		}
		s.metrics.IncrementAPICall(remoteErr == nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false

	// Поздний результат: сессия ушла вперед (пауза, завершение) пока
	// выполнялся запрос. Результат отбрасывается, не применяется
	if s.phase != PhaseActive || len(s.asked)+1 != number {
		return nil, fmt.Errorf("%w: сессия изменилась во время запроса вопроса", ErrInvalidState)
	}

	if mode == ModeOnline && remoteErr != nil {
		log.Printf("Переход в fallback режим: %v", remoteErr)
		s.mode = ModeFallback
		s.metrics.IncrementFallbackActivations()
		mode = ModeFallback
	}

	if mode == ModeFallback {
		bankText, ok := s.bank.Next(s.cfg.Style, len(s.asked))
		if !ok {
			return nil, ErrNoMoreQuestions
		}
		text = bankText
		fromBank = true
	}

	question := Question{
		Index:   number,
		Text:    text,
		AskedAt: time.Now(),
	}
	s.asked = append(s.asked, question)
	s.current = &question
	if isFollowUp {
		s.followUpsUsed++
	}
	s.metrics.IncrementQuestionsAsked()
	if fromBank {
		s.metrics.IncrementFallbackQuestions()
	}

	issued := question
	return &issued, nil
}

// SubmitResponse принимает ответ на текущий вопрос. Ответ всегда связывается
// с вопросом, активным на момент отправки. Анализ ответа запускается в фоне
// и не блокирует продвижение сессии
func (s *Session) SubmitResponse(text string) error {
	answer := strings.TrimSpace(text)

	s.mu.Lock()

	if s.phase != PhaseActive {
		s.mu.Unlock()
		return fmt.Errorf("%w: ответ можно отправить только в фазе ACTIVE (фаза %s)", ErrInvalidState, s.phase)
	}
	if s.current == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: нет заданного вопроса", ErrInvalidState)
	}
	if answer == "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: ответ не может быть пустым", ErrInvalidState)
	}

	response := InterviewResponse{
		Index:      s.current.Index,
		Question:   s.current.Text,
		Answer:     answer,
		AskedAt:    s.current.AskedAt,
		AnsweredAt: time.Now(),
	}
	s.responses = append(s.responses, response)
	slot := len(s.responses) - 1
	question := s.current.Text
	s.current = nil
	s.mu.Unlock()

	// Best-effort анализ: результат прикрепляется к ответу по номеру слота,
	// никогда к "текущему" ответу
	go s.analyzeResponse(slot, question, answer)

	return nil
}

// analyzeResponse выполняет фоновый анализ ответа и прикрепляет результат
// к слоту, для которого он был запрошен. Ошибка означает лишь отсутствие
// анализа и не влияет на ход сессии
func (s *Session) analyzeResponse(slot int, question, answer string) {
	analysis, err := s.remote.AnalyzeResponse(question, answer, &s.cfg)
	s.metrics.IncrementAPICall(err == nil)
	if err != nil {
		log.Printf("Анализ ответа %d недоступен: %v", slot+1, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Терминальная фаза: поздний результат отбрасывается
	if s.phase == PhaseEnded {
		return
	}
	if slot < 0 || slot >= len(s.responses) {
		return
	}
	s.responses[slot].Analysis = analysis
	s.metrics.IncrementResponsesAnalyzed()
}

// Pause переводит сессию из ACTIVE в PAUSED. Запрос вопроса, выполняющийся
// в этот момент, не отменяется: его поздний результат будет отброшен
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return fmt.Errorf("%w: приостановить можно только активную сессию (фаза %s)", ErrInvalidState, s.phase)
	}
	s.phase = PhasePaused
	return nil
}

// Resume переводит сессию из PAUSED обратно в ACTIVE
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePaused {
		return fmt.Errorf("%w: возобновить можно только приостановленную сессию (фаза %s)", ErrInvalidState, s.phase)
	}
	s.phase = PhaseActive
	return nil
}

// End завершает сессию (досрочно или по исчерпанию вопросов) и запрашивает
// итоговую аналитику по всем накопленным ответам. Частично пройденная сессия
// тоже анализируется. Ошибка аналитики возвращается вызывающей стороне:
// сессия при этом уже в терминальной фазе ENDED, а выгрузка ответов остается
// доступной через Transcript
func (s *Session) End() (api.AnalyticsData, error) {
	s.mu.Lock()

	if s.phase == PhaseEnded {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: сессия уже завершена", ErrInvalidState)
	}

	s.phase = PhaseEnded
	s.current = nil
	exchanges := s.exchangesLocked()
	s.mu.Unlock()

	s.metrics.IncrementSessionsCompleted()

	analytics, err := s.remote.GenerateAnalytics(exchanges, &s.cfg)
	s.metrics.IncrementAPICall(err == nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации аналитики: %w", err)
	}

	s.mu.Lock()
	s.analytics = analytics
	s.mu.Unlock()

	return analytics, nil
}

// Progress возвращает прогресс сессии. Чистая проекция состояния:
// current ограничен диапазоном [0, total], percentage насыщается на 100
func (s *Session) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := s.cfg.MaxQuestions
	current := len(s.asked)
	if current > total {
		current = total
	}
	if current < 0 {
		current = 0
	}

	var percentage float64
	if total > 0 {
		percentage = 100 * float64(current) / float64(total)
		if percentage > 100 {
			percentage = 100
		}
	}

	return Progress{
		Current:    current,
		Total:      total,
		Percentage: percentage,
	}
}

// Phase возвращает текущую фазу сессии
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Mode возвращает текущий источник вопросов
func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// CurrentQuestion возвращает вопрос, ожидающий ответа, или nil
func (s *Session) CurrentQuestion() *Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	q := *s.current
	return &q
}

// Responses возвращает копию последовательности собранных ответов
func (s *Session) Responses() []InterviewResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]InterviewResponse, len(s.responses))
	copy(out, s.responses)
	return out
}

// AskedQuestions возвращает копию последовательности заданных вопросов
func (s *Session) AskedQuestions() []Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Question, len(s.asked))
	copy(out, s.asked)
	return out
}

// Analytics возвращает итоговую аналитику, если она была получена
func (s *Session) Analytics() api.AnalyticsData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analytics
}

// Transcript возвращает выгрузку сессии для ручного экспорта
func (s *Session) Transcript() *storage.Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]storage.Entry, len(s.responses))
	for i, r := range s.responses {
		entries[i] = storage.Entry{
			QuestionNumber: r.Index,
			Question:       r.Question,
			Answer:         r.Answer,
			AskedAt:        r.AskedAt.Format(time.RFC3339),
			AnsweredAt:     r.AnsweredAt.Format(time.RFC3339),
			Analysis:       r.Analysis,
		}
	}

	return &storage.Transcript{
		SessionID: s.id,
		Topic:     s.cfg.Topic,
		Style:     string(s.cfg.Style),
		StartedAt: s.startedAt.Format(time.RFC3339),
		Entries:   entries,
	}
}

// ExportTranscript сохраняет выгрузку сессии на диск и возвращает путь
// к файлу. Используется для ручного экспорта, когда аналитика недоступна
func (s *Session) ExportTranscript() (string, error) {
	return storage.SaveTranscript(s.Transcript())
}

// exchangesLocked собирает пары вопрос/ответ для передачи в удаленный сервис.
// Вызывается только под блокировкой
func (s *Session) exchangesLocked() []api.Exchange {
	out := make([]api.Exchange, len(s.responses))
	for i, r := range s.responses {
		out[i] = api.Exchange{
			QuestionNumber: r.Index,
			Question:       r.Question,
			Answer:         r.Answer,
		}
	}
	return out
}
