package kafka

import (
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/stretchr/testify/assert"

	streamio "github.com/usherasnick/stream-gadgets/stream-io"
)

// fakePartition is a partitionConsumer driven by the test.
type fakePartition struct {
	messages chan *sarama.ConsumerMessage
	errors   chan *sarama.ConsumerError
	closed   bool
}

func newFakePartition() *fakePartition {
	return &fakePartition{
		messages: make(chan *sarama.ConsumerMessage, 8),
		errors:   make(chan *sarama.ConsumerError, 8),
	}
}

func (p *fakePartition) Messages() <-chan *sarama.ConsumerMessage {
	return p.messages
}

func (p *fakePartition) Errors() <-chan *sarama.ConsumerError {
	return p.errors
}

func (p *fakePartition) Close() error {
	p.closed = true
	return nil
}

func (p *fakePartition) yield(offset int64, value string) {
	p.messages <- &sarama.ConsumerMessage{Offset: offset, Value: []byte(value)}
}

func TestSourceWithMockConsumer(t *testing.T) {
	cfg := &Config{Topic: "stream", FromOldest: true}
	consumer := mocks.NewConsumer(t, NewConfig(cfg))
	pc := consumer.ExpectConsumePartition("stream", 0, sarama.OffsetOldest)
	pc.YieldMessage(&sarama.ConsumerMessage{Value: []byte("hello, ")})
	pc.YieldMessage(&sarama.ConsumerMessage{Value: []byte("world")})

	source, err := NewSourceFromConsumer(cfg, consumer, -1)
	assert.Nil(t, err)

	buf := make([]byte, 12)
	assert.Nil(t, streamio.ReadExact(source, buf))
	assert.Equal(t, "hello, world", string(buf))
}

func TestSourceEndOfStream(t *testing.T) {
	fp := newFakePartition()
	fp.yield(7, "abc")
	fp.yield(8, "de")
	close(fp.messages)

	source := newSource(&Config{}, fp)
	assert.Equal(t, int64(-1), source.Offset())

	var got []byte
	n, err := streamio.ReadToEnd(source, &got)
	assert.Nil(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "abcde", string(got))
	assert.Equal(t, int64(8), source.Offset())

	assert.Nil(t, source.Close())
	assert.True(t, fp.closed)
}

func TestSourceSplitsMessages(t *testing.T) {
	fp := newFakePartition()
	fp.yield(0, "abcdef")
	source := newSource(&Config{}, fp)

	buf := make([]byte, 4)
	o, err := source.Read(buf)
	assert.Nil(t, err)
	assert.Equal(t, streamio.Complete(4), o)
	assert.Equal(t, "abcd", string(buf))

	o, err = source.Read(buf)
	assert.Nil(t, err)
	assert.Equal(t, streamio.Partial(2), o)
	assert.Equal(t, "ef", string(buf[:o.N()]))
}

func TestSourceError(t *testing.T) {
	fp := newFakePartition()
	fp.errors <- &sarama.ConsumerError{Topic: "stream", Err: sarama.ErrOffsetOutOfRange}
	source := newSource(&Config{}, fp)

	_, err := source.Read(make([]byte, 4))
	var cerr *sarama.ConsumerError
	assert.True(t, errors.As(err, &cerr))
	assert.Equal(t, sarama.ErrOffsetOutOfRange, cerr.Err)

	// a closed error channel is ignored
	close(fp.errors)
	fp.yield(1, "ok")
	o, err := source.Read(make([]byte, 2))
	assert.Nil(t, err)
	assert.Equal(t, streamio.Complete(2), o)
}

func TestSourceNonBlocking(t *testing.T) {
	fp := newFakePartition()
	source := newSource(&Config{NonBlocking: true}, fp)

	o, err := source.Read(make([]byte, 4))
	assert.Nil(t, err)
	assert.True(t, o.IsRetry())

	fp.yield(0, "go")
	var got []byte
	close(fp.messages)
	_, err = streamio.ReadToEnd(source, &got)
	assert.Nil(t, err)
	assert.Equal(t, "go", string(got))
}
