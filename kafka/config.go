package kafka

import (
	"os"

	"github.com/Shopify/sarama"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
	// Key 生产消息的key, 为空则不设置
	Key string `json:"key"`
	// Partition Source消费的分区
	Partition  int32  `json:"partition"`
	FromOldest bool   `json:"from_oldest"`
	ClientID   string `json:"client_id"`
	// NonBlocking Source没有消息时返回Retry, 而不是等待
	NonBlocking bool `json:"non_blocking"`
}

func NewConfig(cfg *Config) *sarama.Config {
	conf := sarama.NewConfig()
	if cfg.FromOldest {
		conf.Consumer.Offsets.Initial = sarama.OffsetOldest
	}
	if cfg.ClientID != "" {
		conf.ClientID = cfg.ClientID
	}
	// a Sink relies on SyncProducer, which requires successes to be returned
	conf.Producer.Return.Successes = true
	conf.Consumer.Return.Errors = true
	GetKafkaAccessEnv(conf)
	return conf
}

func GetKafkaAccessEnv(cfg *sarama.Config) {
	usr := os.Getenv("KAFKA_USERNAME")
	pwd := os.Getenv("KAFKA_PASSWORD")
	if usr == "" || pwd == "" {
		log.Warn().Msg("access kafka without SASL setting")
		return
	}
	cfg.Net.SASL.Enable = true
	cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	cfg.Net.SASL.User = usr
	cfg.Net.SASL.Password = pwd
	cfg.Net.SASL.Version = sarama.SASLHandshakeV1
}
