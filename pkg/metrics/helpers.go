package metrics

import (
	"time"
)

// RecordCacheHit фиксирует попадание в Redis кеш
func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

// RecordCacheMiss фиксирует промах Redis кеша
func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

// RecordRedisError фиксирует ошибку операции Redis
func RecordRedisError(service, operation string) {
	RedisErrors.WithLabelValues(service, operation).Inc()
}

// RecordKafkaMessageProduced фиксирует успешную отправку сообщения в Kafka
func RecordKafkaMessageProduced(service, topic string, duration time.Duration) {
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
	KafkaProduceDuration.WithLabelValues(service, topic).Observe(duration.Seconds())
}

// RecordKafkaError фиксирует ошибку отправки в Kafka
func RecordKafkaError(service, topic string) {
	KafkaErrors.WithLabelValues(service, topic).Inc()
}

// RecordStorageOperation фиксирует операцию с блоб-хранилищем
func RecordStorageOperation(service, backend, operation string, duration time.Duration) {
	StorageOperationsTotal.WithLabelValues(service, backend, operation).Inc()
	StorageOperationDuration.WithLabelValues(service, backend, operation).Observe(duration.Seconds())
}

// RecordStorageError фиксирует ошибку блоб-хранилища
func RecordStorageError(service, backend, operation string) {
	StorageErrors.WithLabelValues(service, backend, operation).Inc()
}
