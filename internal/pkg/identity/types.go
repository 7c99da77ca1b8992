package identity

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "github.com/structure-inspection/internal/pkg/errors"
)

// typeCodes - коды типов структур. Таблица статическая, не вычисляется.
var typeCodes = map[string]string{
	"residential":    "RS",
	"commercial":     "CM",
	"industrial":     "IN",
	"institutional":  "IS",
	"educational":    "ED",
	"healthcare":     "HC",
	"hospital":       "HC",
	"government":     "GV",
	"mixed_use":      "MU",
	"religious":      "RL",
	"heritage":       "HR",
	"infrastructure": "IF",
	"other":          "OT",
}

// normalizeType приводит "Mixed Use", "mixed-use" и "MIXED_USE" к одному ключу
func normalizeType(t string) string {
	// Caser хранит состояние, поэтому создаётся на каждый вызов
	t = cases.Fold().String(strings.TrimSpace(t))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(t)
}

// TypeCode возвращает двухсимвольный код типа структуры
func TypeCode(typeOfStructure string) (string, error) {
	code, ok := typeCodes[normalizeType(typeOfStructure)]
	if !ok {
		return "", apperrors.ErrUnknownStructureType.WithDetails(map[string]interface{}{
			"type_of_structure": typeOfStructure,
		})
	}
	return code, nil
}

// TypeName возвращает канонические имена типов для кода (обратный поиск)
func TypeName(code string) []string {
	code = toUpper(code)
	var names []string
	for name, c := range typeCodes {
		if c == code {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// SupportedTypes - все известные типы
func SupportedTypes() []string {
	names := make([]string, 0, len(typeCodes))
	for name := range typeCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// toUpper переводит в верхний регистр, сохраняя число символов: руна,
// которая раскрывается в несколько (ß -> SS), остаётся как есть
func toUpper(s string) string {
	s = strings.TrimSpace(s)
	caser := cases.Upper(language.Und)

	upper := caser.String(s)
	if utf8.RuneCountInString(upper) == utf8.RuneCountInString(s) {
		return upper
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		u := caser.String(string(r))
		if utf8.RuneCountInString(u) == 1 {
			b.WriteString(u)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
