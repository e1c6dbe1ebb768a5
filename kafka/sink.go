package kafka

import (
	"github.com/Shopify/sarama"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/stream-gadgets/stream-io"
)

// messageOverhead 为消息编码开销预留的字节数.
// sarama counts the record framing and the key against Producer.MaxMessageBytes; its
// largest framing overhead is 36 bytes (record batches) and 26 bytes for older message sets.
const messageOverhead = 64

// valueLimit 返回一条消息中value允许的最大字节数, 至少为1.
func valueLimit(maxMessageBytes int, key string) int {
	if n := maxMessageBytes - len(key) - messageOverhead; n > 0 {
		return n
	}
	return 1
}

// Sink 将字节流写入kafka, 实现streamio.Writer.
// Written bytes are staged; Flush publishes them as one message. When the staged bytes fill
// a message, that is MaxMessageBytes minus the key and framing, they are published before more is accepted.
type Sink struct {
	conf     *Config
	producer sarama.SyncProducer
	max      int
	staged   []byte
}

// NewSink connects a SyncProducer to cfg.Brokers.
func NewSink(cfg *Config) (*Sink, error) {
	conf := NewConfig(cfg)
	producer, err := sarama.NewSyncProducer(cfg.Brokers, conf)
	if err != nil {
		log.Error().Err(err).Msg("failed to create kafka producer")
		return nil, err
	}
	return NewSinkFromProducer(cfg, producer, conf.Producer.MaxMessageBytes), nil
}

// NewSinkFromProducer wraps an existing producer. maxMessageBytes <= 0 means sarama's default.
func NewSinkFromProducer(cfg *Config, producer sarama.SyncProducer, maxMessageBytes int) *Sink {
	if maxMessageBytes <= 0 {
		maxMessageBytes = sarama.NewConfig().Producer.MaxMessageBytes
	}
	return &Sink{
		conf:     cfg,
		producer: producer,
		max:      valueLimit(maxMessageBytes, cfg.Key),
	}
}

func (s *Sink) Write(p []byte) (streamio.Outcome, error) {
	if s.producer == nil || len(p) == 0 {
		return streamio.EndOfStream(), nil
	}
	if len(s.staged) >= s.max {
		if err := s.publish(); err != nil {
			return streamio.EndOfStream(), err
		}
	}
	n := len(p)
	if room := s.max - len(s.staged); n > room {
		n = room
	}
	s.staged = append(s.staged, p[:n]...)
	return streamio.Transferred(n, len(p)), nil
}

// Flush publishes the staged bytes, if any.
func (s *Sink) Flush() error {
	if s.producer == nil || len(s.staged) == 0 {
		return nil
	}
	return s.publish()
}

func (s *Sink) publish() error {
	message := &sarama.ProducerMessage{
		Topic: s.conf.Topic,
		Value: sarama.ByteEncoder(s.staged),
	}
	if len(s.conf.Key) > 0 {
		message.Key = sarama.StringEncoder(s.conf.Key)
	}
	partition, offset, err := s.producer.SendMessage(message)
	if err != nil {
		return err
	}
	log.Debug().Msgf("published %d bytes to %s, partition: %v, offset: %v", len(s.staged), s.conf.Topic, partition, offset)
	// the encoder keeps the slice, so start a new one
	s.staged = nil
	return nil
}

// Close flushes and closes the producer. Writes after Close report EndOfStream.
func (s *Sink) Close() error {
	if s.producer == nil {
		return nil
	}
	err := s.Flush()
	if cerr := s.producer.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close kafka producer")
		if err == nil {
			err = cerr
		}
	}
	s.producer = nil
	return err
}
