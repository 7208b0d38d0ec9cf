package kafka

import (
	"errors"
	"testing"

	"afristay/config"
	"afristay/infras/otel/mocks"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_QueuesWithoutBlocking(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Kafka.Brokers = []string{"localhost:9092"}

	client, ok := New(cfg, mocks.NewOtel()).(*kafkaClientImpl)
	require.True(t, ok)

	writer := client.writer("notifications")

	assert.True(t, writer.Async)
	assert.NotNil(t, writer.Completion)
	assert.Equal(t, writerBatchTimeout, writer.BatchTimeout)
	assert.Same(t, writer, client.writer("notifications"))
	assert.NotSame(t, writer, client.writer("other"))

	assert.NotPanics(t, func() {
		writer.Completion([]kafkaGo.Message{{Key: []byte("k")}}, errors.New("broker down"))
		writer.Completion(nil, nil)
	})

	require.NoError(t, client.Close())
	assert.Empty(t, client.writers)
}
