package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации для привязки к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Очереди и ключи маршрутизации приложения.
const (
	AccessLogQueue      = "events.access"
	AccessLogKey        = "access"
	LiabilityFeedQueue  = "events.liabilities"
	LiabilityChangedKey = "liability.changed"
)

// GetEventQueues возвращает очереди приложения: журнал доступа
// и лента изменений обязательств.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: AccessLogQueue, RoutingKey: AccessLogKey},
		{QueueName: LiabilityFeedQueue, RoutingKey: LiabilityChangedKey},
	}
}
