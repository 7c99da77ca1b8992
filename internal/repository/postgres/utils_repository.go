package postgres

import "strings"

// Константы для лимитов запросов
const (
	// DefaultQueryLimit - лимит по умолчанию для запросов
	DefaultQueryLimit = 50
	// MaxQueryLimit - максимальный лимит для запросов
	MaxQueryLimit = 500
)

// normalizeLimit ограничивает лимит выборки
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}

// escapeLike экранирует спецсимволы LIKE, чтобы префикс искался буквально
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
