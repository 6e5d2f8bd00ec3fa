package controllers

import (
	"context"

	"github.com/lintang-b-s/roadfinder/pkg/http/usecases"
)

type PlanningService interface {
	Plan(ctx context.Context, req usecases.PlanRequest) (usecases.PlanResponse, error)
	PlanBatch(ctx context.Context, reqs []usecases.PlanRequest) []usecases.BatchResult
	Maps() []usecases.MapInfo
}
