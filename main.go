package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"interview-session-client/internal/api"
	"interview-session-client/internal/config"
	"interview-session-client/internal/fallback"
	"interview-session-client/internal/metrics"
	"interview-session-client/internal/session"
)

func main() {
	fmt.Println("🚀 Запуск клиента интервью-сессии...")

	// Загружаем переменные окружения; отсутствие .env файла не критично
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения")
	}

	appCfg := config.LoadAppConfig()

	// Загружаем конфигурацию интервью
	configPath := "config/interview.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации интервью: %v", err)
	}

	// Инициализируем сервисы
	fmt.Println("🔧 Инициализация сервисов...")

	client := api.NewClient(appCfg.Remote.BaseURL, appCfg.Remote.Timeout)
	fmt.Println("✅ Клиент удаленного сервиса инициализирован")

	bank := fallback.DefaultBank()
	if appCfg.Bank.File != "" {
		bank, err = fallback.LoadBank(appCfg.Bank.File)
		if err != nil {
			log.Fatalf("Ошибка загрузки базы вопросов: %v", err)
		}
		fmt.Printf("✅ База вопросов загружена из %s\n", appCfg.Bank.File)
	} else {
		fmt.Println("✅ Используется встроенная база вопросов")
	}

	m := metrics.NewMetrics()
	sess, err := session.NewSession(cfg, client, bank, m)
	if err != nil {
		log.Fatalf("Ошибка создания сессии: %v", err)
	}

	// Выводим информацию о конфигурации
	fmt.Println("\n📋 Конфигурация:")
	fmt.Printf("• Тема: %s\n", cfg.Topic)
	fmt.Printf("• Стиль: %s\n", cfg.Style)
	fmt.Printf("• Уровень: %s\n", cfg.ExperienceLevel)
	fmt.Printf("• Вопросов: до %d\n", cfg.MaxQuestions)

	// Информационная проверка доступности; переход в fallback режим
	// происходит только по фактической ошибке запроса вопроса
	if client.CheckHealth() {
		fmt.Println("• Удаленный сервис: доступен 🌐")
	} else {
		fmt.Println("• Удаленный сервис: недоступен, вопросы будут из локальной базы ⚠️")
	}

	runInterview(sess, m)
}

// runInterview проводит интервью в интерактивном режиме через stdin
func runInterview(sess *session.Session, m *metrics.Metrics) {
	if err := sess.Start(); err != nil {
		log.Fatalf("Ошибка запуска сессии: %v", err)
	}

	fmt.Printf("\n🎯 Интервью началось! ID: %s\n", sess.ID())
	fmt.Println("Отвечайте на вопросы. Пустая строка повторяет запрос ответа, /stop завершает досрочно.")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		question, err := sess.NextQuestion()
		if errors.Is(err, session.ErrNoMoreQuestions) {
			fmt.Println("\n✅ Вопросы закончились.")
			break
		}
		if err != nil {
			log.Fatalf("Ошибка получения вопроса: %v", err)
		}

		progress := sess.Progress()
		fmt.Printf("\n❓ Вопрос %d/%d (%.0f%%):\n%s\n", progress.Current, progress.Total, progress.Percentage, question.Text)

		stopped := false
		for {
			fmt.Print("Ваш ответ: ")
			if !scanner.Scan() {
				stopped = true
				break
			}
			answer := strings.TrimSpace(scanner.Text())

			if answer == "/stop" {
				stopped = true
				break
			}

			err := sess.SubmitResponse(answer)
			if err == nil {
				break
			}
			fmt.Println("Пожалуйста, дайте непустой ответ.")
		}

		if stopped {
			fmt.Println("\n🛑 Интервью завершается досрочно...")
			break
		}
	}

	finishInterview(sess, m)
}

// finishInterview завершает сессию, запрашивает аналитику и при ее
// недоступности сохраняет выгрузку ответов для ручного экспорта
func finishInterview(sess *session.Session, m *metrics.Metrics) {
	fmt.Println("📊 Генерация итоговой аналитики...")

	analytics, err := sess.End()
	if err != nil {
		fmt.Println("❌ Не удалось получить аналитику:", err)

		transcript := sess.Transcript()
		if path, saveErr := sess.ExportTranscript(); saveErr != nil {
			log.Printf("Ошибка сохранения выгрузки: %v", saveErr)
		} else {
			fmt.Printf("💾 Ответы сохранены для ручного экспорта: %s (%d шт.)\n", path, len(transcript.Entries))
		}
	} else {
		jsonData, marshalErr := json.MarshalIndent(analytics, "", "  ")
		if marshalErr != nil {
			log.Printf("Ошибка форматирования аналитики: %v", marshalErr)
		} else {
			fmt.Printf("\n🎉 Аналитика интервью:\n%s\n", string(jsonData))
		}
	}

	snapshot := m.GetSnapshot()
	fmt.Println("\n📈 Статистика сессии:")
	fmt.Printf("• Задано вопросов: %d\n", snapshot.QuestionsAsked)
	fmt.Printf("• Из локальной базы: %d\n", snapshot.FallbackQuestions)
	fmt.Printf("• Проанализировано ответов: %d\n", snapshot.ResponsesAnalyzed)
	fmt.Printf("• Запросов к сервису: %d (успешных %d)\n", snapshot.APICallsTotal, snapshot.APICallsSuccessful)
}
