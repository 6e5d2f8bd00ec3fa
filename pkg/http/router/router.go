package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/roadfinder/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/roadfinder/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/roadfinder/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "github.com/lintang-b-s/roadfinder/docs"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "net/http/pprof"
)

const shutdownTimeout = 10 * time.Second

type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type API struct {
	log *zap.Logger
	hub *controllers.Hub
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			roadfinder API
//	@version		1.0
//	@description	shortest path planning on occupancy grids.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost:6060
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	planningService controllers.PlanningService,
	rateLimit RateLimit,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(ctx, config, planningService, rateLimit), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		api.hub.RemoveAllUser()
		return err

	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		api.hub.RemoveAllUser()
		if err := http_server.GracefulShutdown(srv, shutdownTimeout); err != nil {
			return err
		}
		if err := <-serverErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

// Handler builds the router and its middleware chain.
func (api *API) Handler(
	ctx context.Context,
	config http_server.Config,
	planningService controllers.PlanningService,
	rateLimit RateLimit,
) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", requestIDHeader},
		ExposedHeaders:   []string{"Link", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	group := router_helper.NewRouteGroup(router, "/api")

	planningRoutes := controllers.New(planningService, api.log)
	planningRoutes.Routes(group)

	api.hub = controllers.NewHub(planningService, api.log, config.Timeout)
	group.GET("/ws", api.handleWebsocket(ctx))

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Labels, Logger(api.log)}
	if rateLimit.Enabled {
		mwChain = append(mwChain, Limit(rateLimit.RPS, rateLimit.Burst))
	}
	if config.Timeout > 0 {
		mwChain = append(mwChain, Timeout(config.Timeout))
	}
	return alice.New(mwChain...).Then(router)
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
