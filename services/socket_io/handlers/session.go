package handlers

import (
	redis_models "Perkdraft/models/redis"
	socketio_types "Perkdraft/services/socket_io/types"
	"Perkdraft/utils/apperrors"
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// SessionReader is the part of the session manager the socket handlers need
type SessionReader interface {
	GetSession(ctx context.Context, code string) (*redis_models.Session, error)
}

// HandleWatchSession joins the client to the room of a session and sends it
// the current state.
func HandleWatchSession(sessions SessionReader, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			log.Printf("[WATCH-ERROR] Missing session code from socket %s", client.Id())
			client.Emit("error", gin.H{"error": "Missing session code"})
			return
		}
		code, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Session code must be a string"})
			return
		}
		code = strings.ToUpper(strings.TrimSpace(code))

		s, err := sessions.GetSession(context.Background(), code)
		if err != nil {
			log.Printf("[WATCH-ERROR] Socket %s: %v", client.Id(), err)
			client.Emit("error", gin.H{"error": apperrors.MessageOf(err), "kind": apperrors.KindOf(err)})
			return
		}

		if previous, existed := sio.Watch(string(client.Id()), code); existed && previous != code {
			client.Leave(socket.Room(previous))
		}
		client.Join(socket.Room(code))
		log.Printf("[WATCH] Socket %s watching session %s", client.Id(), code)
		client.Emit("session_updated", s)
	}
}

// HandleUnwatchSession leaves the room the client was following
func HandleUnwatchSession(client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if code, ok := sio.Unwatch(string(client.Id())); ok {
			client.Leave(socket.Room(code))
		}
	}
}

// HandleDisconnecting forgets the client's watch entry
func HandleDisconnecting(client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if code, ok := sio.Unwatch(string(client.Id())); ok {
			log.Printf("[DISCONNECT] Socket %s stopped watching %s", client.Id(), code)
		}
	}
}
