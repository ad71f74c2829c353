package fallback

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-session-client/internal/config"
)

func TestNextDeterministic(t *testing.T) {
	bank := DefaultBank()

	first, ok := bank.Next(config.StyleTechnical, 0)
	require.True(t, ok)
	require.NotEmpty(t, first)

	// Повторный вызов с теми же аргументами возвращает тот же вопрос
	again, ok := bank.Next(config.StyleTechnical, 0)
	require.True(t, ok)
	assert.Equal(t, first, again)

	second, ok := bank.Next(config.StyleTechnical, 1)
	require.True(t, ok)
	assert.NotEqual(t, first, second)
}

func TestNextExhaustion(t *testing.T) {
	bank := DefaultBank()
	size := bank.Size(config.StyleHR)
	require.Greater(t, size, 0)

	// Последний вопрос еще есть, следующий за ним — сигнал завершения
	_, ok := bank.Next(config.StyleHR, size-1)
	assert.True(t, ok)

	question, ok := bank.Next(config.StyleHR, size)
	assert.False(t, ok)
	assert.Empty(t, question)

	_, ok = bank.Next(config.StyleHR, -1)
	assert.False(t, ok)
}

func TestAllStylesCovered(t *testing.T) {
	bank := DefaultBank()
	for _, style := range config.Styles {
		assert.Greater(t, bank.Size(style), 0, "категория %s пуста", style)
	}
}

func TestLoadBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	content := `banks:
  technical:
    - "Первый вопрос?"
    - "Второй вопрос?"
  hr:
    - "Расскажите о себе."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	bank, err := LoadBank(path)
	require.NoError(t, err)

	q, ok := bank.Next(config.StyleTechnical, 1)
	require.True(t, ok)
	assert.Equal(t, "Второй вопрос?", q)

	// Категории, которых нет в файле, считаются исчерпанными сразу
	_, ok = bank.Next(config.StyleCaseStudy, 0)
	assert.False(t, ok)
}

func TestLoadBankValidation(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"unknown_style.yaml": `banks:
  quiz:
    - "вопрос"
`,
		"empty_category.yaml": `banks:
  technical: []
`,
		"empty_question.yaml": `banks:
  technical:
    - ""
`,
		"no_banks.yaml": `banks: {}`,
	}

	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		_, err := LoadBank(path)
		assert.Error(t, err, name)
	}

	_, err := LoadBank(filepath.Join(dir, "нет_такого.yaml"))
	assert.Error(t, err)
}
