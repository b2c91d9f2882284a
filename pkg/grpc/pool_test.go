package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/connectivity"
)

func TestPool_ReusesConnectionPerTarget(t *testing.T) {
	p := NewPool()
	defer p.Close()

	a, err := p.GetConnection("localhost:50051")
	require.NoError(t, err)
	b, err := p.GetConnection("localhost:50051")
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := p.GetConnection("localhost:50052")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, p.Len())
}

func TestPool_RecreatesAfterClose(t *testing.T) {
	p := NewPool()

	a, err := p.GetConnection("localhost:50051")
	require.NoError(t, err)
	require.NoError(t, p.Close())
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, connectivity.Shutdown, a.GetState())

	b, err := p.GetConnection("localhost:50051")
	require.NoError(t, err)
	defer p.Close()
	assert.NotSame(t, a, b)
}

func TestPool_ReplacesShutdownConnection(t *testing.T) {
	p := NewPool()
	defer p.Close()

	a, err := p.GetConnection("localhost:50051")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := p.GetConnection("localhost:50051")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, 1, p.Len())
}
