package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vitalvas/infotheory/xentropy"
)

type Config struct {
	Address         string        `yaml:"address" json:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	Entropy         EntropyConfig `yaml:"entropy" json:"entropy"`
}

func (c *Config) Default() {
	*c = Config{
		Address:         ":9696",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxBodyBytes:    1 << 20,
	}
}

// EntropyConfig holds the base and mode used when a request omits them.
type EntropyConfig struct {
	Base float64       `yaml:"base" json:"base"`
	Mode xentropy.Mode `yaml:"mode" json:"mode"`
}

func (c *EntropyConfig) Default() {
	*c = EntropyConfig{
		Base: xentropy.DefaultBase,
		Mode: xentropy.ProbabilityBased,
	}
}

type Server struct {
	conf   Config
	logger *slog.Logger
}

func New(conf Config, logger *slog.Logger) *Server {
	return &Server{
		conf:   conf,
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("POST /entropy", s.handleEntropy)
	mux.HandleFunc("POST /joint-entropy", s.handleJointEntropy)
	mux.HandleFunc("POST /mutual-information", s.handleMutualInformation)
	mux.HandleFunc("POST /grid", s.handleGrid)

	return s.withRequestID(s.withLogging(mux))
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", s.conf.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.conf.Address, err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.conf.ReadTimeout,
		WriteTimeout: s.conf.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("http server started", slog.String("address", ln.Addr().String()))

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.conf.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}

	s.logger.Info("http server stopped")

	return nil
}
