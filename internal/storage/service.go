package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const resultsDir = "results"

// SaveTranscript сохраняет выгрузку сессии в JSON файл и возвращает путь к нему
func SaveTranscript(transcript *Transcript) (string, error) {
	// Создаем директорию если её нет
	err := os.MkdirAll(resultsDir, 0755)
	if err != nil {
		return "", fmt.Errorf("ошибка создания директории %s: %w", resultsDir, err)
	}

	filename := fmt.Sprintf("interview_%s.json", transcript.SessionID)
	path := filepath.Join(resultsDir, filename)

	// Сериализуем с отступами для ручного просмотра
	jsonData, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации выгрузки: %w", err)
	}

	err = os.WriteFile(path, jsonData, 0644)
	if err != nil {
		return "", fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}

	return path, nil
}

// LoadTranscript загружает выгрузку сессии из JSON файла
func LoadTranscript(sessionID string) (*Transcript, error) {
	filename := fmt.Sprintf("interview_%s.json", sessionID)
	path := filepath.Join(resultsDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}

	var transcript Transcript
	err = json.Unmarshal(data, &transcript)
	if err != nil {
		return nil, fmt.Errorf("ошибка десериализации JSON: %w", err)
	}

	return &transcript, nil
}

// ListTranscripts возвращает список ID всех сохраненных сессий
func ListTranscripts() ([]string, error) {
	if _, err := os.Stat(resultsDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории %s: %w", resultsDir, err)
	}

	var results []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := entry.Name()
		if len(name) > 10 && name[:10] == "interview_" {
			results = append(results, name[10:len(name)-5])
		}
	}

	return results, nil
}
