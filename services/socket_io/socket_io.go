package socket_io

import (
	redis_models "Perkdraft/models/redis"
	"Perkdraft/services/socket_io/handlers"
	socketio_types "Perkdraft/services/socket_io/types"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func NewMySocketServer() *MySocketServer {
	return (*MySocketServer)(socketio_types.NewSocketServer())
}

// Start creates the socket.io server and mounts it on the router.
// Clients emit "watch_session" with a session code and then receive
// "session_updated" after every transition.
func (sio *MySocketServer) Start(router *gin.Engine, sessions handlers.SessionReader, allowedOrigin string) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      allowedOrigin,
		Credentials: true,
	})

	if sio.Watchers == nil {
		sio.Watchers = make(map[string]string)
	}
	server := (*socketio_types.SocketServer)(sio)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		log.Printf("[SOCKET] Client connected: %s", client.Id())

		client.On("watch_session", handlers.HandleWatchSession(sessions, client, server))

		client.On("unwatch_session", handlers.HandleUnwatchSession(client, server))

		client.On("disconnecting", handlers.HandleDisconnecting(client, server))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	log.Println("Socket server started")
}

// SessionUpdated broadcasts the session to everyone watching it
func (sio *MySocketServer) SessionUpdated(s *redis_models.Session) {
	if sio == nil || sio.Sio_server == nil {
		return
	}
	if err := sio.Sio_server.To(socket.Room(s.Code)).Emit("session_updated", s); err != nil {
		log.Printf("[SOCKET-ERROR] Broadcasting session %s: %v", s.Code, err)
	}
}

// Close shuts the socket server down
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
