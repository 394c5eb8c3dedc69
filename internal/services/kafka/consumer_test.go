package kafka

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/iwtcode/pendantService/internal/middleware/logging"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type fakeReader struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if len(r.messages) == 0 {
		return kafka.Message{}, r.err
	}
	m := r.messages[0]
	r.messages = r.messages[1:]
	return m, nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestSignalConsumer_DeliversInOrder(t *testing.T) {
	reader := &fakeReader{
		messages: []kafka.Message{{Value: []byte("a"), Offset: 1}, {Value: []byte("b"), Offset: 2}},
		err:      io.EOF,
	}
	c := newSignalConsumer(reader, logging.Nop())

	var got []string
	err := c.Run(context.Background(), func(raw []byte) { got = append(got, string(raw)) })

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.NoError(t, c.Close())
	assert.True(t, reader.closed)
}

func TestSignalConsumer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newSignalConsumer(&fakeReader{err: errors.New("unreachable")}, logging.Nop())

	err := c.Run(ctx, func([]byte) { t.Fatal("unexpected message") })
	assert.ErrorIs(t, err, context.Canceled)
}
