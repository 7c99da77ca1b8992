package repository

import "context"

// SeedFunc возвращает текущий максимум порядкового номера для префикса
type SeedFunc func(ctx context.Context) (int, error)

// SequenceCounter - атомарный счётчик порядковых номеров на префикс локации
type SequenceCounter interface {
	// Next атомарно увеличивает счётчик префикса и возвращает новое значение.
	// Если счётчика ещё нет, он инициализируется результатом seed.
	Next(ctx context.Context, prefix string, seed SeedFunc) (int, error)
}
