// Package lifecycle runs the services of one play session and tears them
// down in reverse order on exit, SIGINT or SIGTERM.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a component that runs until it finishes or is stopped.
type Service interface {
	// Start runs the service. It blocks until the service is done or ctx is
	// cancelled.
	Start(ctx context.Context) error
	// Stop releases what the service holds. It runs once during shutdown,
	// whether or not Start has returned.
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
// Either function may be nil.
type FuncService struct {
	StartFn func(ctx context.Context) error
	StopFn  func()
}

// Start calls StartFn, or waits for ctx when there is none.
func (f *FuncService) Start(ctx context.Context) error {
	if f.StartFn == nil {
		<-ctx.Done()
		return nil
	}
	return f.StartFn(ctx)
}

// Stop calls StopFn.
func (f *FuncService) Stop() {
	if f.StopFn != nil {
		f.StopFn()
	}
}

// Closer turns a cleanup function into a Service that only acts on
// shutdown, such as closing a pool.
func Closer(fn func()) Service {
	return &FuncService{StopFn: fn}
}

// Lifecycle manages the startup and shutdown of services. Services are
// started in order and stopped in reverse order.
type Lifecycle struct {
	logger   *zap.Logger
	services []namedService
	mu       sync.Mutex
	signals  []os.Signal
}

type namedService struct {
	name    string
	service Service
}

// New creates a Lifecycle that shuts down on SIGINT and SIGTERM.
//
// Precondition: logger must be non-nil.
func New(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Add registers a named service. Services are started in the order they
// are added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts all services and blocks until one of them returns, a
// termination signal arrives or ctx is cancelled. Every service is then
// stopped in reverse order.
//
// Postcondition: All services are stopped when Run returns. The error is
// the first service failure, or nil.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	ctx, stopSignals := signal.NotifyContext(ctx, l.signals...)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	type result struct {
		name string
		err  error
	}
	done := make(chan result, len(services))
	for _, ns := range services {
		go func() {
			l.logger.Debug("starting service", zap.String("service", ns.name))
			done <- result{name: ns.name, err: ns.service.Start(ctx)}
		}()
	}
	l.logger.Debug("all services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(start)),
	)

	var runErr error
	select {
	case res := <-done:
		if res.err != nil && !errors.Is(res.err, context.Canceled) {
			l.logger.Error("service failed", zap.String("service", res.name), zap.Error(res.err))
			runErr = fmt.Errorf("service %s: %w", res.name, res.err)
		} else {
			l.logger.Info("service finished, shutting down", zap.String("service", res.name))
		}
	case <-ctx.Done():
		l.logger.Info("interrupted, shutting down")
	}
	cancel()

	l.shutdown(services)
	l.logger.Debug("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return runErr
}

func (l *Lifecycle) shutdown(services []namedService) {
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		ns.service.Stop()
		l.logger.Debug("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
}
