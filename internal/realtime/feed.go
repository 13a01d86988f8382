// Package realtime реализует ленту изменений обязательств: потребляет
// события из очереди и сбрасывает кеши затронутого пользователя, чтобы
// следующее чтение выполнило полную свежую выборку. Инкрементальных
// обновлений нет — только повторный список.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/rabbitmq"
	"github.com/fambudgeteer/family-budget/internal/services/liability"
	"github.com/fambudgeteer/family-budget/internal/services/networth"
)

// Cache описывает сброс ключей кеша.
type Cache interface {
	Invalidate(key string) error
}

// RunLiabilityFeed запускает потребителя ленты изменений обязательств.
// Каждое событие сбрасывает кеш списка обязательств и чистого капитала
// пользователя. Потребитель завершается при отмене контекста —
// подписка освобождается вместе с приложением.
func RunLiabilityFeed(ctx context.Context, ch *amqp.Channel, cache Cache, log *slog.Logger) error {
	const op = "realtime.RunLiabilityFeed"

	err := rabbitmq.ConsumerMessage(ctx, ch, rabbitmq.LiabilityFeedQueue, func(body []byte) error {
		var event liability.ChangeEvent
		if err := json.Unmarshal(body, &event); err != nil {
			log.Error("failed to decode liability change event", sl.Err(err))
			return nil
		}
		if event.UserUID == "" {
			return nil
		}
		if err := cache.Invalidate(liability.ListKey(event.UserUID)); err != nil {
			log.Warn("failed to invalidate liabilities cache", sl.Err(err))
		}
		if err := cache.Invalidate(networth.Key(event.UserUID)); err != nil {
			log.Warn("failed to invalidate net worth cache", sl.Err(err))
		}
		log.Info("resynced liability caches", slog.String("user_uid", event.UserUID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
