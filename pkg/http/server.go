package http

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/roadfinder/pkg/http/router"
	"github.com/lintang-b-s/roadfinder/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/roadfinder/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger

	g *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API in the background. Wait returns once it has stopped.
func (s *Server) Use(
	ctx context.Context,
	planningService controllers.PlanningService,
) (*Server, error) {
	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}
	rateLimit := http_router.RateLimit{
		Enabled: viper.GetBool("USE_RATE_LIMIT"),
		RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
		Burst:   viper.GetInt("RATE_LIMIT_BURST"),
	}

	server := http_router.NewAPI(s.Log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, config, planningService, rateLimit)
	})
	s.g = g

	return s, nil
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	err := s.g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// GracefulShutdown blocks until SIGINT or SIGTERM.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
