package controllers

import (
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/engine/planner"
	"github.com/lintang-b-s/roadfinder/pkg/http/usecases"
)

type cellRequest struct {
	Row *int `json:"row" validate:"required"`
	Col *int `json:"col" validate:"required"`
}

func (c *cellRequest) toCell() da.GridCell {
	return da.NewGridCell(*c.Row, *c.Col)
}

type planRequest struct {
	MapName        string       `json:"map_name" validate:"required_without=Grid"`
	Grid           [][]int      `json:"grid" validate:"required_without=MapName"`
	Start          *cellRequest `json:"start" validate:"required"`
	End            *cellRequest `json:"end" validate:"required"`
	Solver         string       `json:"solver" validate:"omitempty,oneof=bellman-ford dijkstra"`
	Snap           bool         `json:"snap"`
	SnapRadius     float64      `json:"snap_radius" validate:"gte=0,lte=64"`
	InitialBearing *float64     `json:"initial_bearing" validate:"omitempty,gte=0,lt=360"`
}

// toPlanRequest. an inline grid that does not form a valid map is rejected here with da.ErrInvalidMap.
func (r *planRequest) toPlanRequest() (usecases.PlanRequest, error) {
	req := usecases.PlanRequest{
		MapName:        r.MapName,
		Start:          r.Start.toCell(),
		End:            r.End.toCell(),
		Solver:         planner.SolverKind(r.Solver),
		Snap:           r.Snap,
		SnapRadius:     r.SnapRadius,
		InitialBearing: r.InitialBearing,
	}
	if r.MapName == "" {
		grid, err := da.NewOccupancyGrid(r.Grid)
		if err != nil {
			return usecases.PlanRequest{}, err
		}
		req.Grid = grid
	}
	return req, nil
}

type planBatchRequest struct {
	Requests []planRequest `json:"requests" validate:"required,min=1,max=256,dive"`
}

type batchItemResponse struct {
	Data  *usecases.PlanResponse `json:"data,omitempty"`
	Error *errorBody             `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}
