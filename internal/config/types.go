package config

// InterviewConfig представляет неизменяемую конфигурацию одной сессии интервью
type InterviewConfig struct {
	Topic           string          `yaml:"topic"`
	Style           Style           `yaml:"style"`
	ExperienceLevel ExperienceLevel `yaml:"experience_level"`
	CompanyName     string          `yaml:"company_name,omitempty"`
	DurationMinutes int             `yaml:"duration_minutes"`
	MaxQuestions    int             `yaml:"max_questions"`
	MaxFollowUps    int             `yaml:"max_followup_questions"`
}

// Style представляет стиль интервью
type Style string

const (
	StyleTechnical         Style = "technical"
	StyleHR                Style = "hr"
	StyleBehavioral        Style = "behavioral"
	StyleSalaryNegotiation Style = "salary-negotiation"
	StyleCaseStudy         Style = "case-study"
)

// Styles перечисляет все поддерживаемые стили в фиксированном порядке
var Styles = []Style{
	StyleTechnical,
	StyleHR,
	StyleBehavioral,
	StyleSalaryNegotiation,
	StyleCaseStudy,
}

// Valid проверяет, что стиль входит в список поддерживаемых
func (s Style) Valid() bool {
	for _, known := range Styles {
		if s == known {
			return true
		}
	}
	return false
}

// ExperienceLevel представляет уровень опыта кандидата
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelJunior ExperienceLevel = "junior"
	LevelMiddle ExperienceLevel = "middle"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

// Valid проверяет, что уровень опыта входит в список поддерживаемых
func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelJunior, LevelMiddle, LevelSenior, LevelLead:
		return true
	}
	return false
}

// AsPayload возвращает конфигурацию как дерево в локальном формате
// для передачи через кодек сетевой границы
func (c *InterviewConfig) AsPayload() map[string]interface{} {
	payload := map[string]interface{}{
		"topic":           c.Topic,
		"style":           string(c.Style),
		"experienceLevel": string(c.ExperienceLevel),
		"durationMinutes": c.DurationMinutes,
		"maxQuestions":    c.MaxQuestions,
	}
	if c.CompanyName != "" {
		payload["companyName"] = c.CompanyName
	}
	return payload
}
