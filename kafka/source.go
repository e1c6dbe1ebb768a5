package kafka

import (
	"github.com/Shopify/sarama"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/stream-gadgets/stream-io"
)

// partitionConsumer is the part of sarama.PartitionConsumer a Source needs.
type partitionConsumer interface {
	Messages() <-chan *sarama.ConsumerMessage
	Errors() <-chan *sarama.ConsumerError
	Close() error
}

// Source 将一个分区中消息的值拼接成字节流, 实现streamio.Reader.
// The stream ends when the partition consumer's message channel is closed.
type Source struct {
	conf     *Config
	consumer sarama.Consumer
	pc       partitionConsumer
	errs     <-chan *sarama.ConsumerError
	cur      []byte
	offset   int64
}

// NewSource consumes cfg.Partition of cfg.Topic starting at offset.
// A negative offset means oldest or newest, following cfg.FromOldest.
func NewSource(cfg *Config, offset int64) (*Source, error) {
	conf := NewConfig(cfg)
	consumer, err := sarama.NewConsumer(cfg.Brokers, conf)
	if err != nil {
		log.Error().Err(err).Msg("failed to create kafka consumer")
		return nil, err
	}
	s, err := NewSourceFromConsumer(cfg, consumer, offset)
	if err != nil {
		consumer.Close() // nolint
		return nil, err
	}
	return s, nil
}

// NewSourceFromConsumer starts consuming on an existing consumer. The Source owns it afterwards.
func NewSourceFromConsumer(cfg *Config, consumer sarama.Consumer, offset int64) (*Source, error) {
	if offset < 0 {
		offset = sarama.OffsetNewest
		if cfg.FromOldest {
			offset = sarama.OffsetOldest
		}
	}
	pc, err := consumer.ConsumePartition(cfg.Topic, cfg.Partition, offset)
	if err != nil {
		log.Error().Err(err).Msgf("failed to consume partition: %v, offset: %v", cfg.Partition, offset)
		return nil, err
	}
	log.Info().Msgf("create kafka source, partition: %v, offset: %v", cfg.Partition, offset)

	s := newSource(cfg, pc)
	s.consumer = consumer
	return s, nil
}

func newSource(cfg *Config, pc partitionConsumer) *Source {
	return &Source{
		conf:   cfg,
		pc:     pc,
		errs:   pc.Errors(),
		offset: -1,
	}
}

func (s *Source) Read(p []byte) (streamio.Outcome, error) {
	if len(p) == 0 {
		return streamio.EndOfStream(), nil
	}
	for len(s.cur) == 0 {
		if s.conf.NonBlocking {
			select {
			case msg, ok := <-s.pc.Messages():
				if !ok {
					return streamio.EndOfStream(), nil
				}
				s.take(msg)
			case cerr, ok := <-s.errs:
				if err := s.consumerError(cerr, ok); err != nil {
					return streamio.EndOfStream(), err
				}
			default:
				return streamio.Retry(), nil
			}
			continue
		}
		select {
		case msg, ok := <-s.pc.Messages():
			if !ok {
				return streamio.EndOfStream(), nil
			}
			s.take(msg)
		case cerr, ok := <-s.errs:
			if err := s.consumerError(cerr, ok); err != nil {
				return streamio.EndOfStream(), err
			}
		}
	}

	n := copy(p, s.cur)
	s.cur = s.cur[n:]
	return streamio.Transferred(n, len(p)), nil
}

func (s *Source) take(msg *sarama.ConsumerMessage) {
	s.cur = msg.Value
	s.offset = msg.Offset
}

// consumerError turns a closed error channel off, so select stops picking it.
func (s *Source) consumerError(cerr *sarama.ConsumerError, ok bool) error {
	if !ok {
		s.errs = nil
		return nil
	}
	if cerr == nil {
		return nil
	}
	log.Warn().Err(cerr.Err).Msgf("kafka source error, partition: %v", cerr.Partition)
	return cerr
}

// Initializer is Nop: Read only reports bytes copied out of messages.
func (s *Source) Initializer() streamio.Initializer {
	return streamio.Nop()
}

// Offset returns the offset of the message currently being read, -1 before the first one.
func (s *Source) Offset() int64 {
	return s.offset
}

func (s *Source) Close() error {
	var err error
	if err = s.pc.Close(); err != nil {
		log.Warn().Err(err).Msgf("failed to close consumer, partition: %v", s.conf.Partition)
	}
	if s.consumer != nil {
		if cerr := s.consumer.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close consumer")
			if err == nil {
				err = cerr
			}
		}
	}
	return err
}
