package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu                  sync.RWMutex
	SessionsStarted     int64
	SessionsCompleted   int64
	QuestionsAsked      int64
	FallbackActivations int64
	FallbackQuestions   int64
	ResponsesAnalyzed   int64
	APICallsTotal       int64
	APICallsSuccessful  int64
	LastUpdateTime      time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSessionsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementSessionsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsCompleted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsAsked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsAsked++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementFallbackActivations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackActivations++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementFallbackQuestions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackQuestions++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementResponsesAnalyzed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponsesAnalyzed++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APICallsTotal++
	if success {
		m.APICallsSuccessful++
	}
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Metrics{
		SessionsStarted:     m.SessionsStarted,
		SessionsCompleted:   m.SessionsCompleted,
		QuestionsAsked:      m.QuestionsAsked,
		FallbackActivations: m.FallbackActivations,
		FallbackQuestions:   m.FallbackQuestions,
		ResponsesAnalyzed:   m.ResponsesAnalyzed,
		APICallsTotal:       m.APICallsTotal,
		APICallsSuccessful:  m.APICallsSuccessful,
		LastUpdateTime:      m.LastUpdateTime,
	}
}
