package feed

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/zishang520/socket.io/v2/socket"
)

// Server is the socket.io front end of a Dispatcher.
type Server struct {
	io         *socket.Server
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewServer creates a socket.io server that forwards client events to d.
func NewServer(d *Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		io:         socket.NewServer(nil, nil),
		dispatcher: d,
		logger:     logger,
	}
	s.io.On("connection", s.onConnection)
	return s
}

// Handler serves the socket.io protocol. Mount it at /socket.io/.
func (s *Server) Handler() http.Handler {
	return s.io.ServeHandler(nil)
}

// Close disconnects every client.
func (s *Server) Close() {
	s.io.Close(nil)
}

func (s *Server) onConnection(clients ...any) {
	if len(clients) == 0 {
		return
	}
	client, ok := clients[0].(*socket.Socket)
	if !ok {
		return
	}
	logger := s.logger.With("sid", client.Id())
	logger.Info("Feed client connected.")

	client.On("mount", s.relay(client, "mount"))
	client.On("unmount", s.relay(client, "unmount"))
	client.On("set", s.relay(client, "set"))
	client.On("remove", s.relay(client, "remove"))
	client.On("active", s.relay(client, EventActive))
	client.On("disconnect", func(reason ...any) {
		logger.Info("Feed client disconnected.", "reason", reason)
	})
}

// relay forwards one client event to the dispatcher and answers it.
func (s *Server) relay(client *socket.Socket, event string) func(...any) {
	return func(args ...any) {
		var data any
		if len(args) > 0 {
			data = args[0]
		}
		reply := s.dispatcher.Dispatch(context.Background(), event, data)
		if reply.OK() {
			client.Emit("ok", reply)
		} else {
			client.Emit("error", reply)
		}
	}
}
