// Package server runs the TCP-framed request/response loop that exposes an
// engine.Engine as a networked service: accept a connection, read exactly
// one framed Command, dispatch it to the engine, write exactly one framed
// Response, close the connection (spec §4.9/§6).
package server

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ignitekv/kvs/internal/engine"
	"github.com/ignitekv/kvs/internal/pool"
	"github.com/ignitekv/kvs/internal/protocol"
	kvserrors "github.com/ignitekv/kvs/pkg/errors"
)

// acceptPollInterval bounds how long Serve blocks in a single Accept call,
// so Shutdown's close of the stop channel is noticed promptly without
// needing the "connect a dummy socket to unblock accept" trick the
// original Rust server relies on.
const acceptPollInterval = 500 * time.Millisecond

// Config holds what Serve needs beyond a listener.
type Config struct {
	Engine engine.Engine
	Pool   pool.Pool
	Logger *zap.SugaredLogger
}

// Server accepts connections on a listener and dispatches each one's single
// command through Config.Engine. Each connection is handled on Config.Pool
// (or on a new goroutine when Pool is nil), so the accept loop does not run
// request handling itself; it does wait in Submit while the pool has no free
// worker.
type Server struct {
	listener *net.TCPListener
	cfg      Config
	stop     chan struct{}
	done     chan struct{}
}

// New wraps an already-bound listener. Callers open the listener themselves
// (e.g. net.Listen("tcp", addr)) so tests can bind to an ephemeral port.
func New(listener *net.TCPListener, cfg Config) *Server {
	return &Server{
		listener: listener,
		cfg:      cfg,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Serve runs the accept loop until Shutdown is called. It returns once the
// loop has exited and every accepted connection has been dispatched to the
// pool (not necessarily finished — Shutdown does not wait on in-flight
// requests beyond what the pool itself guarantees on its own Shutdown).
func (s *Server) Serve() error {
	defer close(s.done)

	for {
		select {
		case <-s.stop:
			return nil
		default:
		}

		s.listener.SetDeadline(time.Now().Add(acceptPollInterval))
		conn, err := s.listener.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-s.stop:
				return nil
			default:
			}
			if s.cfg.Logger != nil {
				s.cfg.Logger.Errorw("accept failed", "error", err)
			}
			continue
		}

		s.dispatch(conn)
	}
}

func (s *Server) dispatch(conn net.Conn) {
	task := func() { s.handle(conn) }
	if s.cfg.Pool != nil {
		s.cfg.Pool.Submit(task)
	} else {
		go task()
	}
}

// handle reads exactly one command, runs it, and writes exactly one
// response, then closes the connection (spec §4.9: "one request and one
// response per TCP connection").
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	connID := uuid.NewString()
	remote := conn.RemoteAddr().String()
	log := s.cfg.Logger
	if log != nil {
		log = log.With("connection", connID, "remote", remote)
	}

	var cmd protocol.Command
	if err := protocol.ReadFrame(conn, &cmd); err != nil {
		if log != nil {
			log.Warnw("failed to read command frame", "error", err)
		}
		return
	}

	resp := s.execute(cmd)

	if err := protocol.WriteFrame(conn, resp); err != nil {
		if log != nil {
			log.Warnw("failed to write response frame", "error", err)
		}
	}
}

func (s *Server) execute(cmd protocol.Command) protocol.Response {
	ctx := context.Background()

	switch cmd.Kind {
	case protocol.CommandGet:
		value, found, err := s.cfg.Engine.Get(ctx, cmd.Key)
		if err != nil {
			return protocol.Failure(err.Error())
		}
		if !found {
			return protocol.Ok("")
		}
		return protocol.Ok(value)

	case protocol.CommandSet:
		if err := s.cfg.Engine.Set(ctx, cmd.Key, cmd.Value); err != nil {
			return protocol.Failure(err.Error())
		}
		return protocol.Ok("")

	case protocol.CommandRemove:
		if err := s.cfg.Engine.Remove(ctx, cmd.Key); err != nil {
			return protocol.Failure(err.Error())
		}
		return protocol.Ok("")

	default:
		return protocol.Failure(kvserrors.NewNetworkError(nil, kvserrors.ErrorCodeDecode, "Unknown command kind").Error())
	}
}

// Shutdown stops the accept loop and waits for Serve to return. It does not
// forcibly close connections already dispatched to the pool.
func (s *Server) Shutdown() {
	close(s.stop)
	<-s.done
	s.listener.Close()
}
