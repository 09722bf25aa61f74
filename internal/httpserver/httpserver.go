package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const readHeaderTimeout = 10 * time.Second

// Run starts the HTTP server and all background services, then blocks until a shutdown signal:
//  1. Map HTTP handlers and routes (wires the alerting domain)
//  2. Start the WebSocket hub and the Redis event subscriber
//  3. Start the HTTP server
//  4. Wait for a signal or a server failure, then shut everything down
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.Run.mapHandlers: %v", err)
		return err
	}

	go srv.wsUC.Run()
	srv.logger.Info(ctx, "WebSocket hub started")

	if err := srv.subscriber.Start(ctx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.Run.subscriber.Start: %v", err)
		return err
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	srv.logger.Infof(ctx, "HTTP server started on %s", httpSrv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case sig := <-quit:
		srv.logger.Infof(ctx, "Received signal %v, stopping alerting service...", sig)
	case err := <-serveErr:
		srv.logger.Errorf(ctx, "internal.httpserver.Run.ListenAndServe: %v", err)
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, srv.shutdownTimeout)
	defer cancel()
	srv.shutdown(shutdownCtx, httpSrv)

	return runErr
}

// shutdown stops accepting requests first, then closes live connections, which ends their
// monitoring sessions, and finally waits for in-flight automated actions.
func (srv *HTTPServer) shutdown(ctx context.Context, httpSrv *http.Server) {
	if err := httpSrv.Shutdown(ctx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.shutdown.HTTP: %v", err)
	}
	if err := srv.subscriber.Shutdown(ctx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.shutdown.Subscriber: %v", err)
	}
	if err := srv.wsUC.Shutdown(ctx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.shutdown.WebSocket: %v", err)
	}
	if err := srv.monitorUC.StopAll(ctx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.shutdown.Monitor: %v", err)
	}
	srv.logger.Info(ctx, "Alerting service stopped")
}
