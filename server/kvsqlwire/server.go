package kvsqlwire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tuannm99/kvsql"
)

type ServerConfig struct {
	Addr string
}

// Server serves the wire protocol over one shared DB. The engine has no
// concurrency control, so statements from all connections are serialized
// through a single mutex.
type Server struct {
	cfg ServerConfig
	db  *kvsql.DB
	log *slog.Logger

	mu sync.Mutex
}

func NewServer(cfg ServerConfig, db *kvsql.DB, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, db: db, log: log}
}

// Run listens until SIGINT/SIGTERM or a listener error.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer func() { _ = ln.Close() }()

	s.log.Info("kvsql tcp server listening", "addr", s.cfg.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			s.log.Warn("accept failed", "err", err)
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()
	_ = conn.SetDeadline(time.Time{})

	s.log.Debug("client connected", "remote", conn.RemoteAddr())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req ExecuteRequest
		if err := ReadFrame(conn, &req); err != nil {
			// Client closed or bad frame.
			return
		}

		res, err := s.execute(req.SQL)
		if err != nil {
			_ = WriteFrame(conn, ExecuteResponse{
				ID:    req.ID,
				Error: err.Error(),
			})
			continue
		}

		_ = WriteFrame(conn, ExecuteResponse{
			ID:     req.ID,
			Result: res,
		})
	}
}

func (s *Server) execute(sql string) (*kvsql.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Execute(sql)
}
