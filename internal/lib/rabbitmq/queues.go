package rabbitmq

// Ключи маршрутизации событий сайта.
const (
	EventAccountRegistered      = "account.registered"
	EventPasswordResetRequested = "account.password_reset_requested"
	EventSubscriptionUpgraded   = "subscription.upgraded"
)

// QueueConfig очередь и ключ, с которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// AccountQueues очереди, которые читают почтовые воркеры.
func AccountQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "mail.activation", RoutingKey: EventAccountRegistered},
		{QueueName: "mail.password_reset", RoutingKey: EventPasswordResetRequested},
		{QueueName: "billing.subscription", RoutingKey: EventSubscriptionUpgraded},
	}
}
