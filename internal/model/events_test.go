package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStream(t *testing.T) {
	stream := EventStream{Particle: 2}
	require.NoError(t, stream.emit(CollisionEvent{Collision: 0, Time: 0, Position: Vec3{}, Velocity: Vec3{X: 1}}))
	require.NoError(t, stream.emit(CollisionEvent{Collision: 1, Time: 1, Position: Vec3{X: 1}, Velocity: Vec3{X: -1}}))
	require.NoError(t, stream.emit(CollisionEvent{Collision: 2, Time: 2, Position: Vec3{}, Velocity: Vec3{X: -1}}))
	assert.False(t, stream.Closed())
	stream.close()
	assert.True(t, stream.Closed())
	assert.ErrorIs(t, stream.emit(CollisionEvent{Collision: 3, Time: 3}), errStreamClosed)

	assert.Equal(t, 1, stream.Collisions())
	assert.Equal(t, 2, stream.Final().Collision)
	assert.InDelta(t, 0.5, stream.At(0.5).Position.X, 1e-15)
	assert.Equal(t, 1., stream.At(1).Position.X)
	assert.InDelta(t, 0.5, stream.At(1.5).Position.X, 1e-15)
	assert.Equal(t, -1., stream.At(1.5).Velocity.X)
	assert.Equal(t, 0., stream.At(2).Position.X)
}

func TestEnsembleCollisions(t *testing.T) {
	short := EventStream{Events: make([]CollisionEvent, 2)}
	long := EventStream{Events: make([]CollisionEvent, 5)}
	r := EnsembleResult{Streams: []EventStream{short, long}}
	assert.Equal(t, []int{0, 3}, r.Collisions())
}
