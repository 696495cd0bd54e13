package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout bounds how long Stop waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// HTTPService runs an http.Server as a Service.
type HTTPService struct {
	srv             *http.Server
	logger          *zap.Logger
	shutdownTimeout time.Duration
	ready           chan net.Addr
}

// NewHTTPService wraps srv. Stop drains connections for up to
// DefaultShutdownTimeout.
//
// Precondition: srv and logger must be non-nil.
func NewHTTPService(srv *http.Server, logger *zap.Logger) *HTTPService {
	return &HTTPService{
		srv:             srv,
		logger:          logger,
		shutdownTimeout: DefaultShutdownTimeout,
		ready:           make(chan net.Addr, 1),
	}
}

// Ready yields the bound address once the listener is open.
func (h *HTTPService) Ready() <-chan net.Addr { return h.ready }

// Start listens on srv.Addr and serves until Stop.
func (h *HTTPService) Start() error {
	ln, err := net.Listen("tcp", h.srv.Addr)
	if err != nil {
		return err
	}
	h.logger.Info("http listening", zap.Stringer("addr", ln.Addr()))
	h.ready <- ln.Addr()
	if err := h.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (h *HTTPService) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		h.logger.Warn("http shutdown", zap.Error(err))
	}
}
