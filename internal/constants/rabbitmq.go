package constants

// Обменники
const (
	ListingExchange     = "listing_exchange"
	ListingExchangeType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeySearchPerformed = "search.performed"
)

// Очередь истории поиска и ее ретраи
const (
	SearchHistoryQueue         = "search_history_queue"
	SearchHistoryConsumerTag   = "listing-service-search-history"
	SearchHistoryRetryExchange = "search_history_retry_exchange"
	SearchHistoryRetryQueue    = "search_history_retry_queue"
	SearchHistoryDLX           = "search_history_dlx"
	SearchHistoryDLQ           = "search_history_dlq"
	SearchHistoryDLQRoutingKey = "search.performed.dead"

	SearchHistoryRetryTTLMs = 5000
	SearchHistoryMaxRetries = 3
	SearchHistoryPrefetch   = 10
)
