// Package probesim serves canned hardware probe reports over the same HTTP
// and JSON-RPC websocket surface the real probe helper exposes. It backs the
// probe adapter tests and the simulate-probe developer command.
package probesim

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jbinder6342/OpenCore-Legacy-Patcher/probe"
)

// Config configures the simulated probe service.
type Config struct {
	ListenAddr   string       // address to bind (e.g. :8090)
	Report       probe.Report // the report every probe returns
	Logger       *zap.Logger  // optional
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

var ErrEmptyReport = errors.New("probesim: report has no model")

// Start runs the simulator until the supplied context is canceled. It
// returns the *http.Server, a channel that receives a terminal error (if
// any), and an error for immediate startup issues.
func Start(ctx context.Context, cfg Config) (*http.Server, <-chan error, error) {
	if cfg.Report.Model == "" {
		return nil, nil, ErrEmptyReport
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8090"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/report", ReportHandler(cfg.Report))
	mux.HandleFunc("/rpc", rpcHandler(cfg.Report, cfg.Logger))

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 10*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}

	errCh := make(chan error, 1)

	go func() {
		cfg.Logger.Info("probe simulator listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Shutdown watcher
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return srv, errCh, nil
}

func durationOr(v time.Duration, d time.Duration) time.Duration {
	if v <= 0 {
		return d
	}
	return v
}
