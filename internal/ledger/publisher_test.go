package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmchainx/trace-engine/internal/model"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_Publish_KeyedByCropID(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisher(writer, nil)

	event := model.TransactionEvent{
		ID:     "e1",
		Type:   model.EventPurchase,
		CropID: "c7",
	}
	p.Publish(context.Background(), event)

	require.Len(t, writer.msgs, 1)
	assert.Equal(t, []byte("c7"), writer.msgs[0].Key)

	var decoded model.TransactionEvent
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublisher_Publish_WriteFailureIsSwallowed(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	p := NewPublisher(writer, nil)

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), model.TransactionEvent{ID: "e1"})
	})
}

func TestPublisher_Close(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisher(writer, nil)
	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}
