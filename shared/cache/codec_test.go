package cache

import (
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	t.Parallel()

	type district struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	raw, err := encode([]district{{ID: 1, Name: "Gasabo"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Gasabo"}]`, string(raw))

	var got []district
	require.NoError(t, decode(raw, &got))
	assert.Equal(t, []district{{ID: 1, Name: "Gasabo"}}, got)

	raw, err = encode("1")
	require.NoError(t, err)

	var counter string
	require.NoError(t, decode(raw, &counter))
	assert.Equal(t, "1", counter)

	_, err = encode(make(chan int))
	assert.Error(t, err)

	assert.Error(t, decode([]byte("{"), &got))
}

func TestIsMiss(t *testing.T) {
	t.Parallel()

	assert.True(t, IsMiss(redis.Nil))
	assert.True(t, IsMiss(fmt.Errorf("failed to get cache value: %w", redis.Nil)))
	assert.False(t, IsMiss(fmt.Errorf("dial tcp: connection refused")))
	assert.False(t, IsMiss(nil))
}
