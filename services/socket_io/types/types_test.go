package socketio_types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchers(t *testing.T) {
	s := NewSocketServer()

	_, existed := s.Watch("sock-1", "ABCDE")
	assert.False(t, existed)
	s.Watch("sock-2", "ABCDE")
	assert.Equal(t, 2, s.WatcherCount("ABCDE"))

	previous, existed := s.Watch("sock-1", "FGHIJ")
	assert.True(t, existed)
	assert.Equal(t, "ABCDE", previous)
	assert.Equal(t, 1, s.WatcherCount("ABCDE"))

	code, ok := s.Unwatch("sock-1")
	assert.True(t, ok)
	assert.Equal(t, "FGHIJ", code)
	_, ok = s.Watching("sock-1")
	assert.False(t, ok)
}
