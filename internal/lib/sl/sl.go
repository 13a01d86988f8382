// Package sl содержит небольшие помощники для логгера slog.
package sl

import "log/slog"

// Err оборачивает ошибку в атрибут с ключом "error", чтобы все записи
// об ошибках в логах имели одинаковое поле:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
