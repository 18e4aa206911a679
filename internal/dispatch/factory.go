package dispatch

import (
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/stockwise/stockwise/internal/config"
	"github.com/stockwise/stockwise/internal/utils"
)

// NewBroker creates a Broker instance based on configuration.
// Default is NATS if type is not specified.
func NewBroker(cfg config.DispatchConfig) (Broker, error) {
	brokerType := utils.DispatchType(strings.ToLower(cfg.Type))

	if brokerType == "" {
		brokerType = utils.DispatchTypeNATS
	}

	switch brokerType {
	case utils.DispatchTypeNATS:
		opts := []nats.Option{nats.Timeout(utils.BrokerConnectTimeout)}
		if cfg.Username != "" {
			opts = append(opts, nats.UserInfo(cfg.Username, cfg.Password))
		}
		return newNATSBroker(cfg.URL, opts...)

	case utils.DispatchTypeRedis:
		return newRedisBroker(RedisOptions{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Stream:   cfg.RedisStream,
			Group:    cfg.RedisGroup,
			Consumer: cfg.RedisConsumer,
		})

	case utils.DispatchTypeKafka:
		return newKafkaBroker(KafkaOptions{
			Brokers: cfg.KafkaBrokers,
			GroupID: cfg.KafkaGroupID,
		})

	case utils.DispatchTypeMemory:
		return newMemoryBroker(), nil

	default:
		return nil, fmt.Errorf("unsupported dispatch type: %s (supported: nats, redis, kafka, memory)", brokerType)
	}
}
