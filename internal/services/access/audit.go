package access

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/models"
	"github.com/fambudgeteer/family-budget/internal/rabbitmq"
)

// AuditRepository определяет запись журнала доступа в хранилище.
type AuditRepository interface {
	InsertAccessLog(ctx context.Context, entry models.AccessLogEntry) error
}

// RunAuditWriter запускает потребителя очереди журнала доступа,
// который переносит опубликованные записи в таблицу access_logs.
// Ошибка вставки логируется, сообщение возвращается в очередь.
func RunAuditWriter(ctx context.Context, ch *amqp.Channel, repo AuditRepository, log *slog.Logger) error {
	const op = "access.RunAuditWriter"

	err := rabbitmq.ConsumerMessage(ctx, ch, rabbitmq.AccessLogQueue, func(body []byte) error {
		var entry models.AccessLogEntry
		if err := json.Unmarshal(body, &entry); err != nil {
			log.Error("failed to decode access log entry", sl.Err(err))
			// Некорректное сообщение не станет корректным при повторе.
			return nil
		}
		if err := repo.InsertAccessLog(ctx, entry); err != nil {
			log.Error("failed to insert access log entry", sl.Err(err))
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
