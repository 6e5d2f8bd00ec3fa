package main

import (
	"context"
	"flag"
	"os"

	"github.com/lintang-b-s/roadfinder/pkg/engine/planner"
	"github.com/lintang-b-s/roadfinder/pkg/http"
	"github.com/lintang-b-s/roadfinder/pkg/http/usecases"
	"github.com/lintang-b-s/roadfinder/pkg/logger"
	"github.com/lintang-b-s/roadfinder/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mapsDir = flag.String("maps_dir", "", "directory of *.map, *.map.bz2 and *.yaml maps (overrides MAPS_DIR)")
	solver  = flag.String("solver", "", "default shortest path solver: bellman-ford or dijkstra (overrides PLANNER_SOLVER)")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	util.SetDefaults()
	if err := util.ReadConfig(); err != nil {
		logger.Fatal("read config", zap.Error(err))
	}
	if *mapsDir != "" {
		viper.Set("MAPS_DIR", *mapsDir)
	}
	if *solver != "" {
		viper.Set("PLANNER_SOLVER", *solver)
	}

	planningService, err := usecases.NewPlanningService(logger, usecases.Config{
		CacheSize:  viper.GetInt("PLAN_CACHE_SIZE"),
		SnapRadius: viper.GetFloat64("SNAP_RADIUS"),
		NumWorkers: viper.GetInt("BATCH_WORKERS"),
		Solver:     planner.SolverKind(viper.GetString("PLANNER_SOLVER")),
	})
	if err != nil {
		logger.Fatal("create planning service", zap.Error(err))
	}

	dir := viper.GetString("MAPS_DIR")
	if _, err := os.Stat(dir); err == nil {
		n, err := planningService.LoadMaps(dir)
		if err != nil {
			logger.Fatal("load maps", zap.String("dir", dir), zap.Error(err))
		}
		logger.Info("loaded maps", zap.String("dir", dir), zap.Int("maps", n))
	} else {
		logger.Warn("maps directory not found, only inline grids can be planned", zap.String("dir", dir))
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api, err := http.NewServer(logger).Use(ctx, planningService)
	if err != nil {
		logger.Fatal("start server", zap.Error(err))
	}

	signal := http.GracefulShutdown()
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}

	logger.Info("roadfinder planning server stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
