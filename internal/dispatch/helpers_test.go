package dispatch

import "github.com/nats-io/nats.go"

// Test-only wrappers around the unexported broker constructors.

func NewNATSBroker(url string, opts ...nats.Option) (*NATSBroker, error) {
	return newNATSBroker(url, opts...)
}

func NewNATSBrokerWithConn(conn *nats.Conn) (*NATSBroker, error) {
	return newNATSBrokerWithConn(conn)
}

func NewRedisBroker(opts RedisOptions) (*RedisBroker, error) {
	return newRedisBroker(opts)
}

func NewKafkaBroker(opts KafkaOptions) (*KafkaBroker, error) {
	return newKafkaBroker(opts)
}

func NewMemoryBroker() *MemoryBroker {
	return newMemoryBroker()
}
