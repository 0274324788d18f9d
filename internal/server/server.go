package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"static-server/internal/handlers"
	"static-server/internal/state"
	"static-server/internal/types"
	"static-server/internal/watcher"
	"static-server/internal/websocket"
	"static-server/pkg/config"
)

// Options configures a Server. The entrypoint fills it from pkg/config;
// tests point Root at a temporary directory.
type Options struct {
	Addr          string
	Root          string
	Debug         bool
	WatchInterval time.Duration
}

// Server is the static file server
type Server struct {
	opts    Options
	handler http.Handler
}

// New builds the routes for opts
func New(opts Options) *Server {
	if opts.WatchInterval <= 0 {
		opts.WatchInterval = config.WatchInterval
	}

	mux := http.NewServeMux()
	if opts.Debug {
		mux.HandleFunc(config.ReloadPath, websocket.ReloadHandler)
		mux.HandleFunc(config.ReloadScriptPath, handlers.ReloadScriptHandler)
	}
	mux.HandleFunc("/{$}", handlers.RootRedirectHandler)
	mux.Handle("/", handlers.StaticHandler(opts.Root))

	return &Server{
		opts:    opts,
		handler: withRequestLog(withRecover(mux)),
	}
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe binds the configured address and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if s.opts.Debug {
		go s.watch(watchCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logrus.WithFields(logrus.Fields{
		"addr":  ln.Addr().String(),
		"root":  s.opts.Root,
		"debug": s.opts.Debug,
	}).Info("Server started")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logrus.WithField("uptime", time.Since(state.GetStartedAt()).Round(time.Second).String()).Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) watch(ctx context.Context) {
	if snap, err := watcher.Scan(s.opts.Root); err == nil {
		state.SetFiles(len(snap))
	}

	err := watcher.Watch(ctx, s.opts.Root, s.opts.WatchInterval, func(snap types.Snapshot, changed []string) {
		state.SetFiles(len(snap))
		websocket.BroadcastReload(changed)
	})
	if err != nil {
		logrus.WithError(err).Warn("Live reload disabled")
	}
}
