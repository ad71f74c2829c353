package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWireFormatNestedTree(t *testing.T) {
	local := map[string]interface{}{
		"fullName": "A",
		"items": []interface{}{
			map[string]interface{}{"userId": 1},
		},
	}

	want := map[string]interface{}{
		"full_name": "A",
		"items": []interface{}{
			map[string]interface{}{"user_id": 1},
		},
	}

	got := ToWireFormat(local)
	assert.Equal(t, want, got)

	// Обратное преобразование возвращает исходное дерево
	assert.Equal(t, local, ToLocalFormat(got))
}

func TestRoundTripAlphanumericKeys(t *testing.T) {
	trees := []interface{}{
		map[string]interface{}{
			"questionNumber": 3,
			"previousQuestions": []interface{}{
				"q1",
				map[string]interface{}{"questionText": "x", "askedAt": "2026-01-01T00:00:00Z"},
			},
			"config": map[string]interface{}{
				"experienceLevel": "senior",
				"companyName":     nil,
				"maxQuestions":    float64(5),
				"utf8Payload":     true,
			},
		},
		map[string]interface{}{"a": float64(1)},
		[]interface{}{float64(1), "two", nil, true},
		"scalar",
		nil,
	}

	for _, tree := range trees {
		require.Equal(t, tree, ToLocalFormat(ToWireFormat(tree)))
	}
}

func TestScalarsUntouched(t *testing.T) {
	// Кодек переписывает только ключи: строковые значения с camelCase
	// внутри остаются нетронутыми
	got := ToWireFormat(map[string]interface{}{
		"answerText": "мой firstJob был в стартапе",
	})
	assert.Equal(t, map[string]interface{}{
		"answer_text": "мой firstJob был в стартапе",
	}, got)
}

func TestAmbiguousKeysConservative(t *testing.T) {
	cases := map[string]string{
		"_metadata":  "_metadata",
		"double__us": "double__us",
		"trailing_":  "trailing_",
		"a_1":        "a_1",
		"user_id":    "userId",
		"utf8_name":  "utf8Name",
	}

	for in, want := range cases {
		got := ToLocalFormat(map[string]interface{}{in: true}).(map[string]interface{})
		_, ok := got[want]
		assert.True(t, ok, "ключ %q должен стать %q, получено %v", in, want, got)
	}
}

func TestConsecutiveCapsBestEffort(t *testing.T) {
	// Аббревиатуры не разрываются подчеркиваниями; обратимость для таких
	// ключей не гарантируется
	got := ToWireFormat(map[string]interface{}{"APIKey": "k"}).(map[string]interface{})
	_, ok := got["apikey"]
	assert.True(t, ok)
}
