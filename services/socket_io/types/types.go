package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer contains the socket.io server and which session each
// connected socket is watching.
type SocketServer struct {
	Sio_server *socket.Server
	// socket id -> session code
	Watchers map[string]string
	mutex    sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Watchers: make(map[string]string),
	}
}

// Watch records that socketID follows sessionCode and returns the code it
// followed before, if any
func (s *SocketServer) Watch(socketID, sessionCode string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	previous, existed := s.Watchers[socketID]
	s.Watchers[socketID] = sessionCode
	return previous, existed
}

func (s *SocketServer) Unwatch(socketID string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	code, exists := s.Watchers[socketID]
	delete(s.Watchers, socketID)
	return code, exists
}

func (s *SocketServer) Watching(socketID string) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	code, exists := s.Watchers[socketID]
	return code, exists
}

// WatcherCount counts sockets following sessionCode
func (s *SocketServer) WatcherCount(sessionCode string) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	n := 0
	for _, code := range s.Watchers {
		if code == sessionCode {
			n++
		}
	}
	return n
}
