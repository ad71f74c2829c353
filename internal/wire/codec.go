package wire

import (
	"strings"
	"unicode"
)

// Пакет wire реализует кодек сетевой границы: рекурсивное переименование
// ключей между локальным форматом (camelCase) и сетевым (snake_case).
// Кодек применяется только к ключам, значения никогда не изменяются.

// ToWireFormat переводит ключи дерева из локального формата в сетевой.
// Для ключей из алфавитно-цифровых camelCase-сегментов преобразование
// обратимо. Ключи с подряд идущими заглавными буквами или символами вне
// соглашения преобразуются по принципу best-effort, без гарантии обратимости.
func ToWireFormat(v interface{}) interface{} {
	return transform(v, camelToSnake)
}

// ToLocalFormat переводит ключи дерева из сетевого формата в локальный.
// Ведущие, хвостовые и двойные подчеркивания сохраняются как есть.
func ToLocalFormat(v interface{}) interface{} {
	return transform(v, snakeToCamel)
}

// transform рекурсивно обходит JSON-дерево: для объектов переименовывает
// ключи, для массивов обходит элементы, скаляры возвращает без изменений.
func transform(v interface{}, rename func(string) string) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(node))
		for key, value := range node {
			out[rename(key)] = transform(value, rename)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(node))
		for i, item := range node {
			out[i] = transform(item, rename)
		}
		return out
	default:
		return v
	}
}

// camelToSnake переводит camelCase в snake_case. Подчеркивание вставляется
// только перед заглавной буквой, идущей после строчной буквы или цифры:
// последовательности заглавных не разрываются.
func camelToSnake(key string) string {
	runes := []rune(key)
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' && !unicode.IsUpper(runes[i-1]) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// snakeToCamel переводит snake_case в camelCase. Подчеркивание схлопывается
// только если слева от него стоит буква или цифра, а справа — строчная буква.
// Все остальные подчеркивания (ведущие, хвостовые, двойные, перед цифрой)
// сохраняются без изменений.
func snakeToCamel(key string) string {
	runes := []rune(key)
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '_' && i > 0 && isAlnum(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			b.WriteRune(unicode.ToUpper(runes[i+1]))
			i++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
