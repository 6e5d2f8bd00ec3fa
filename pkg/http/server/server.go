package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// New. http.Server for handler listening on config.Port. request contexts derive from ctx.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},

		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      config.Timeout + viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
}

// GracefulShutdown waits for in flight requests up to timeout.
func GracefulShutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
