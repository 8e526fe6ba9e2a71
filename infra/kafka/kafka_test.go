package kafka

import (
	"context"
	"io"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeReader struct {
	msgs []kafka.Message
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) Close() error { return nil }

func TestProducerConsumerRoundTrip(t *testing.T) {
	ctx := context.Background()
	w := &fakeWriter{}
	p := &Producer{writer: w}
	require.NoError(t, p.Send(ctx, 40, -12, 40))
	require.NoError(t, p.Send(ctx))
	require.NoError(t, p.Close())
	require.True(t, w.closed)
	require.Len(t, w.msgs, 3)
	require.Equal(t, "2", string(w.msgs[2].Key))

	c := &Consumer{reader: &fakeReader{msgs: w.msgs}}
	var got []int64
	for {
		v, err := c.Next(ctx)
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []int64{40, -12, 40}, got)
}

func TestConsumerBadPayload(t *testing.T) {
	c := &Consumer{reader: &fakeReader{msgs: []kafka.Message{{Offset: 7, Value: []byte("x1")}}}}
	_, err := c.Next(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "offset 7")
}
