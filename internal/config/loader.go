package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load загружает конфигурацию интервью из YAML файла
func Load(filename string) (*InterviewConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var config InterviewConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	// Валидация конфигурации
	err = Validate(&config)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return &config, nil
}

// Validate проверяет корректность конфигурации интервью
func Validate(config *InterviewConfig) error {
	if config.Topic == "" {
		return fmt.Errorf("topic не может быть пустым")
	}

	if !config.Style.Valid() {
		return fmt.Errorf("неизвестный стиль интервью: %q", config.Style)
	}

	if !config.ExperienceLevel.Valid() {
		return fmt.Errorf("неизвестный уровень опыта: %q", config.ExperienceLevel)
	}

	if config.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes должно быть больше 0")
	}

	if config.MaxQuestions <= 0 {
		return fmt.Errorf("max_questions должно быть больше 0")
	}

	if config.MaxFollowUps < 0 {
		return fmt.Errorf("max_followup_questions не может быть отрицательным")
	}

	if config.MaxFollowUps >= config.MaxQuestions {
		return fmt.Errorf("max_followup_questions (%d) должно быть меньше max_questions (%d)",
			config.MaxFollowUps, config.MaxQuestions)
	}

	return nil
}
