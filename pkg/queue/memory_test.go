package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue(t *testing.T) {
	q := NewInMemoryQueue(2)

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	err := q.Enqueue(3)
	assert.True(t, IsQueueFull(err))
	assert.Equal(t, 2, q.Size())

	items, err := q.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1, 2}, items)
	assert.Equal(t, 0, q.Size())

	require.NoError(t, q.Enqueue(4))
	items, err = q.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{4}, items)
}

func TestInMemoryQueue_empty(t *testing.T) {
	q := NewInMemoryQueue(1)

	items, err := q.ReadAllMessages()

	require.NoError(t, err)
	assert.Empty(t, items)
}
